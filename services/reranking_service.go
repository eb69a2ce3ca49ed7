package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/Simokod/GameSearchEngine-WIP/models"
	"github.com/Simokod/GameSearchEngine-WIP/utils"
)

// EmbeddingProvider is the slice of the LLM client the semantic strategy needs.
type EmbeddingProvider interface {
	FeatureExtraction(ctx context.Context, text string) ([]float64, error)
}

// RerankingStrategy reorders candidates by relevance to the original query.
// Strategies degrade internally and never fail: the worst case is the input
// order unchanged.
type RerankingStrategy interface {
	Rank(ctx context.Context, games []models.GameSummary, originalQuery string) []models.GameSummary
}

// ── Semantic similarity ──────────────────────────────────────────────────────

// SemanticSimilarityStrategy scores each game by cosine similarity between
// sentence embeddings of the query and of "name. description". Games whose
// embedding fails fall back to a token-overlap score.
type SemanticSimilarityStrategy struct {
	embedder EmbeddingProvider
}

func NewSemanticSimilarityStrategy(embedder EmbeddingProvider) *SemanticSimilarityStrategy {
	return &SemanticSimilarityStrategy{embedder: embedder}
}

func (s *SemanticSimilarityStrategy) Rank(ctx context.Context, games []models.GameSummary, originalQuery string) []models.GameSummary {
	if len(games) == 0 {
		return games
	}

	queryVec, queryErr := s.embedder.FeatureExtraction(ctx, originalQuery)
	if queryErr != nil {
		log.Printf("[rerank] query embedding failed: %v", queryErr)
	}

	type scoredGame struct {
		game  models.GameSummary
		score float64
	}
	scored := make([]scoredGame, len(games))
	var wg sync.WaitGroup
	for i, game := range games {
		wg.Add(1)
		go func(i int, game models.GameSummary) {
			defer wg.Done()
			scored[i] = scoredGame{
				game:  game,
				score: s.similarity(ctx, game, originalQuery, queryVec, queryErr),
			}
		}(i, game)
	}
	wg.Wait()

	// Stable sort keeps the input order on score ties.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})
	ranked := make([]models.GameSummary, len(scored))
	for i, sg := range scored {
		ranked[i] = sg.game
	}
	return ranked
}

func (s *SemanticSimilarityStrategy) similarity(ctx context.Context, game models.GameSummary, query string, queryVec []float64, queryErr error) float64 {
	gameText := game.Name + ". " + game.Description
	if queryErr == nil {
		gameVec, err := s.embedder.FeatureExtraction(ctx, gameText)
		if err == nil {
			return utils.CosineSimilarity(queryVec, gameVec)
		}
		log.Printf("[rerank] embedding failed for %q: %v", game.Name, err)
	}
	return fallbackSimilarity(gameText, query)
}

// fallbackSimilarity is a token-overlap score: the share of query words longer
// than two characters that appear as substrings of the game text.
func fallbackSimilarity(gameText, query string) float64 {
	gameText = strings.ToLower(gameText)
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return 0
	}
	matches := 0
	for _, w := range words {
		if strings.Contains(gameText, w) {
			matches++
		}
	}
	return float64(matches) / float64(len(words))
}

// ── LLM listwise ─────────────────────────────────────────────────────────────

// LLMRerankingStrategy asks the chat model to pick candidates by number, most
// relevant first. Any parse problem falls back to the input order.
type LLMRerankingStrategy struct {
	llm ChatCompleter
}

func NewLLMRerankingStrategy(llm ChatCompleter) *LLMRerankingStrategy {
	return &LLMRerankingStrategy{llm: llm}
}

func (s *LLMRerankingStrategy) Rank(ctx context.Context, games []models.GameSummary, originalQuery string) []models.GameSummary {
	if len(games) == 0 {
		return games
	}

	var list strings.Builder
	for i, game := range games {
		desc := game.Description
		if desc == "" {
			desc = "No description available"
		}
		fmt.Fprintf(&list, "%d. %s - %s\n\n", i+1, game.Name, desc)
	}

	prompt := fmt.Sprintf(`Given this user query: %q

Here are %d games to choose from:

%s
Please select the most relevant games that best match the user's query. Return ONLY a JSON array of the game numbers (1-%d) in order of relevance, with the most relevant first. For example: [5, 12, 3, 7, 1]

Do not include any explanation or text before or after the JSON array.`, originalQuery, len(games), list.String(), len(games))

	content, err := s.llm.ChatCompletion(ctx, prompt)
	if err != nil {
		log.Printf("[rerank] llm reranking failed: %v", err)
		return games
	}

	block, ok := utils.ExtractJSONArray(content)
	if !ok {
		log.Println("[rerank] llm did not return a JSON array, keeping original order")
		return games
	}
	var indices []int
	if err := json.Unmarshal([]byte(block), &indices); err != nil {
		log.Printf("[rerank] invalid index array, keeping original order: %v", err)
		return games
	}

	seen := make(map[int]bool, len(indices))
	ranked := make([]models.GameSummary, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(games) || seen[idx] {
			continue
		}
		seen[idx] = true
		ranked = append(ranked, games[idx-1])
	}
	return ranked
}

// ── Service wrapper ──────────────────────────────────────────────────────────

// RerankingService applies the active strategy and truncates to maxResults.
// The strategy is swappable at runtime.
type RerankingService struct {
	mu       sync.RWMutex
	strategy RerankingStrategy
}

func NewRerankingService(strategy RerankingStrategy) *RerankingService {
	return &RerankingService{strategy: strategy}
}

func (s *RerankingService) SetStrategy(strategy RerankingStrategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = strategy
}

func (s *RerankingService) RerankGames(ctx context.Context, games []models.GameSummary, originalQuery string, maxResults int) []models.GameSummary {
	if len(games) == 0 {
		return games
	}
	s.mu.RLock()
	strategy := s.strategy
	s.mu.RUnlock()

	log.Printf("[rerank] reranking %d games for query %q", len(games), originalQuery)
	ranked := strategy.Rank(ctx, games, originalQuery)
	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}
