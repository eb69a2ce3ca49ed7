package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

// candidatePoolSize is how many catalog candidates the descriptive branch
// retrieves for the reranker to choose from.
const candidatePoolSize = 50

// GameCatalog is the catalog capability the orchestrator depends on.
type GameCatalog interface {
	InitializeCache(ctx context.Context) error
	SearchGames(ctx context.Context, params models.SearchParams) ([]models.GameSummary, error)
	GetGameDetails(ctx context.Context, id int) (*models.GameDetails, error)
}

// SearchAnalyzer is the LLM capability the orchestrator depends on.
type SearchAnalyzer interface {
	AnalyzeSearchQuery(ctx context.Context, userQuery string) (models.QueryAnalysis, error)
	ExtractGameSearchParams(ctx context.Context, userQuery string) (models.ExtractedSearchParams, error)
}

// Reranker orders candidates by relevance and truncates to maxResults.
type Reranker interface {
	RerankGames(ctx context.Context, games []models.GameSummary, originalQuery string, maxResults int) []models.GameSummary
}

// GamesService runs the search pipeline: classify the query, fetch candidates
// from the catalog, rerank descriptive results, then enrich each survivor with
// per-title details.
type GamesService struct {
	catalog  GameCatalog
	analyzer SearchAnalyzer
	reranker Reranker
}

func NewGamesService(catalog GameCatalog, analyzer SearchAnalyzer, reranker Reranker) *GamesService {
	return &GamesService{catalog: catalog, analyzer: analyzer, reranker: reranker}
}

// SearchGames answers a user query with up to pageSize enriched games.
func (s *GamesService) SearchGames(ctx context.Context, query string, page, pageSize int) ([]models.FullGameInfo, error) {
	analysis, err := s.analyzer.AnalyzeSearchQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query analysis failed: %w", err)
	}

	var results []models.GameSummary
	if analysis.IsDirectGameSearch {
		log.Printf("[games] direct search for %q", query)
		results, err = s.catalog.SearchGames(ctx, models.SearchParams{
			Query:    query,
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, err
		}
	} else {
		log.Printf("[games] descriptive search for %q", query)
		extracted, err := s.analyzer.ExtractGameSearchParams(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search param extraction failed: %w", err)
		}

		// Filter-only catalog search over a wider pool; the reranker decides
		// the final order and size.
		candidates, err := s.catalog.SearchGames(ctx, models.SearchParams{
			Query:      "",
			Page:       page,
			PageSize:   candidatePoolSize,
			Genres:     extracted.Genres,
			Platforms:  extracted.Platforms,
			Tags:       extracted.Tags,
			Dates:      extracted.Dates,
			Developers: extracted.Developers,
			Publishers: extracted.Publishers,
		})
		if err != nil {
			return nil, err
		}
		results = s.reranker.RerankGames(ctx, candidates, query, pageSize)
	}

	return s.enrichGames(ctx, results), nil
}

// enrichGames fetches details for every summary in parallel. A failed detail
// lookup never fails the request: that game keeps its summary fields and empty
// enrichment. Output order equals input order.
func (s *GamesService) enrichGames(ctx context.Context, summaries []models.GameSummary) []models.FullGameInfo {
	results := make([]models.FullGameInfo, len(summaries))
	var wg sync.WaitGroup
	for i, summary := range summaries {
		wg.Add(1)
		go func(i int, summary models.GameSummary) {
			defer wg.Done()
			full := models.FullGameInfo{
				ID:        summary.ID,
				Name:      summary.Name,
				Released:  summary.Released,
				Rating:    summary.Rating,
				Genres:    orEmpty(summary.Genres),
				Platforms: orEmpty(summary.Platforms),
				Stores:    []models.StoreLink{},
			}
			details, err := s.catalog.GetGameDetails(ctx, summary.ID)
			if err != nil {
				log.Printf("[games] failed to fetch details for game %d: %v", summary.ID, err)
			} else if details != nil {
				full.Stores = details.Stores
				full.Website = details.Website
				full.Description = details.Description
			}
			results[i] = full
		}(i, summary)
	}
	wg.Wait()
	return results
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
