package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Simokod/GameSearchEngine-WIP/models"
	"github.com/Simokod/GameSearchEngine-WIP/utils"
)

// ChatCompleter is the slice of the LLM client the analyzer needs.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, prompt string) (string, error)
}

// QueryAnalyzer wraps the LLM behind the two operations the search pipeline
// needs: classifying a query and extracting structured search parameters.
type QueryAnalyzer struct {
	llm ChatCompleter
}

func NewQueryAnalyzer(llm ChatCompleter) *QueryAnalyzer {
	return &QueryAnalyzer{llm: llm}
}

// AnalyzeSearchQuery classifies userQuery as a direct game-name search or a
// descriptive query.
func (a *QueryAnalyzer) AnalyzeSearchQuery(ctx context.Context, userQuery string) (models.QueryAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze this search query: %q

First, determine if this is a direct game name search or a descriptive query:
- Direct game name: Simple game title like "Skyrim", "The Witcher 3", "Call of Duty"
- Descriptive query: User describes what they want like "RPG games with magic", "games like Minecraft", "multiplayer shooters"

Respond ONLY with a valid JSON object with keys: isDirectGameSearch (boolean). Do not include any explanation or text before or after the JSON.`, userQuery)

	var analysis models.QueryAnalysis
	if err := a.completeJSON(ctx, prompt, &analysis); err != nil {
		log.Printf("[analyzer] query analysis failed: %v", err)
		return models.QueryAnalysis{}, err
	}
	return analysis, nil
}

// ExtractGameSearchParams distills a descriptive query into structured catalog
// filters. The prompt keeps the model honest: platforms/developers/publishers
// only when explicitly named, dates only for a stated time window, tags may be
// inferred.
func (a *QueryAnalyzer) ExtractGameSearchParams(ctx context.Context, userQuery string) (models.ExtractedSearchParams, error) {
	prompt := fmt.Sprintf(`Extract genres, platforms, tags, dates, developers, publishers, and suggest up to 5 game titles from this user query: %q

- Only include platforms, developers, or publishers if the user specifically mentions them. Otherwise, leave these arrays empty.
- Only include dates if the user mentions a time period or release window.
- For tags, you may infer relevant tags based on the user's description or referenced games, even if not explicitly mentioned.
- Respond ONLY with a valid JSON object with keys: genres, platforms, tags, dates, developers, publishers, suggested_titles. Do not include any explanation or text before or after the JSON.`, userQuery)

	var params models.ExtractedSearchParams
	if err := a.completeJSON(ctx, prompt, &params); err != nil {
		log.Printf("[analyzer] param extraction failed: %v", err)
		return models.ExtractedSearchParams{}, err
	}
	return params, nil
}

// completeJSON runs a chat completion and parses the first JSON object out of
// the (possibly prose-wrapped) reply.
func (a *QueryAnalyzer) completeJSON(ctx context.Context, prompt string, out any) error {
	content, err := a.llm.ChatCompletion(ctx, prompt)
	if err != nil {
		return err
	}
	block, ok := utils.ExtractJSONObject(content)
	if !ok {
		return fmt.Errorf("no JSON object found in LLM response")
	}
	if err := json.Unmarshal([]byte(block), out); err != nil {
		return fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return nil
}
