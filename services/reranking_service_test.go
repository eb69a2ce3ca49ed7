package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

func rerankFixture() []models.GameSummary {
	return []models.GameSummary{
		{ID: 1, Name: "Hades", Description: "Rogue-like dungeon crawler."},
		{ID: 2, Name: "Stardew Valley", Description: "Cozy farming sim with multiplayer."},
		{ID: 3, Name: "Doom Eternal", Description: "Fast demon shooter."},
	}
}

// ── LLM listwise ─────────────────────────────────────────────────────────────

func TestLLMRerankingOrdersBySelectedIndices(t *testing.T) {
	llm := &fakeChatCompleter{reply: "Here you go: [2, 3] hope that helps"}
	strategy := NewLLMRerankingStrategy(llm)

	ranked := strategy.Rank(context.Background(), rerankFixture(), "cozy farming")
	require.Len(t, ranked, 2)
	assert.Equal(t, 2, ranked[0].ID)
	assert.Equal(t, 3, ranked[1].ID)
}

func TestLLMRerankingSkipsInvalidIndices(t *testing.T) {
	llm := &fakeChatCompleter{reply: "[2, 9, 0, 2, 1]"}
	strategy := NewLLMRerankingStrategy(llm)

	ranked := strategy.Rank(context.Background(), rerankFixture(), "anything")
	require.Len(t, ranked, 2)
	assert.Equal(t, 2, ranked[0].ID)
	assert.Equal(t, 1, ranked[1].ID)
}

func TestLLMRerankingFallsBackOnGarbage(t *testing.T) {
	fixture := rerankFixture()

	llm := &fakeChatCompleter{reply: "I cannot rank these games."}
	ranked := NewLLMRerankingStrategy(llm).Rank(context.Background(), fixture, "q")
	assert.Equal(t, fixture, ranked)

	llm = &fakeChatCompleter{err: errors.New("upstream down")}
	ranked = NewLLMRerankingStrategy(llm).Rank(context.Background(), fixture, "q")
	assert.Equal(t, fixture, ranked)
}

// ── Semantic similarity ──────────────────────────────────────────────────────

type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) FeatureExtraction(_ context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("no embedding for text")
	}
	return vec, nil
}

func TestSemanticRerankingSortsByCosine(t *testing.T) {
	fixture := rerankFixture()
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"cozy farming": {1, 0},
		fixture[0].Name + ". " + fixture[0].Description: {0, 1},    // orthogonal
		fixture[1].Name + ". " + fixture[1].Description: {1, 0},    // identical
		fixture[2].Name + ". " + fixture[2].Description: {0.5, 1},  // in between
	}}

	ranked := NewSemanticSimilarityStrategy(embedder).Rank(context.Background(), fixture, "cozy farming")
	require.Len(t, ranked, 3)
	assert.Equal(t, 2, ranked[0].ID)
	assert.Equal(t, 3, ranked[1].ID)
	assert.Equal(t, 1, ranked[2].ID)
}

func TestSemanticRerankingFallsBackToTokenOverlap(t *testing.T) {
	// All embeddings fail; the token-overlap fallback favors games whose text
	// contains the query words.
	embedder := &fakeEmbedder{err: errors.New("model loading")}

	ranked := NewSemanticSimilarityStrategy(embedder).Rank(context.Background(), rerankFixture(), "farming multiplayer")
	require.Len(t, ranked, 3)
	assert.Equal(t, 2, ranked[0].ID)
}

func TestSemanticRerankingStableOnTies(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("down")}
	fixture := rerankFixture()

	// Query shares no words with any game: all scores are 0 and the input
	// order must survive.
	ranked := NewSemanticSimilarityStrategy(embedder).Rank(context.Background(), fixture, "xyz")
	assert.Equal(t, fixture, ranked)
}

// ── Service wrapper ──────────────────────────────────────────────────────────

type identityStrategy struct{}

func (identityStrategy) Rank(_ context.Context, games []models.GameSummary, _ string) []models.GameSummary {
	return games
}

func TestRerankGamesTruncates(t *testing.T) {
	service := NewRerankingService(identityStrategy{})

	ranked := service.RerankGames(context.Background(), rerankFixture(), "q", 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].ID)
}

func TestRerankGamesEmptyInput(t *testing.T) {
	service := NewRerankingService(identityStrategy{})
	assert.Empty(t, service.RerankGames(context.Background(), nil, "q", 5))
}

func TestSetStrategySwapsAtRuntime(t *testing.T) {
	service := NewRerankingService(identityStrategy{})
	llm := &fakeChatCompleter{reply: "[3, 1, 2]"}
	service.SetStrategy(NewLLMRerankingStrategy(llm))

	ranked := service.RerankGames(context.Background(), rerankFixture(), "q", 5)
	require.Len(t, ranked, 3)
	assert.Equal(t, 3, ranked[0].ID)
}
