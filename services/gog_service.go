package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

const gogBaseURL = "https://www.gog.com"

var (
	gogGameURLRe  = regexp.MustCompile(`gog\.com(?:/en)?/game/([a-zA-Z0-9_\-]+)`)
	nonAlnumRunRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// GogClient resolves a GOG product page URL to price information through the
// storefront's filtered-search endpoint.
type GogClient struct {
	http    *http.Client
	baseURL string
}

func NewGogClient() *GogClient {
	return &GogClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: gogBaseURL,
	}
}

type gogPrice struct {
	Amount             string `json:"amount"`
	BaseAmount         string `json:"baseAmount"`
	FinalAmount        string `json:"finalAmount"`
	IsDiscounted       bool   `json:"isDiscounted"`
	DiscountPercentage int    `json:"discountPercentage"`
	Currency           string `json:"currency"`
	Symbol             string `json:"symbol"`
}

type gogProduct struct {
	Title  string   `json:"title"`
	Price  gogPrice `json:"price"`
	URL    string   `json:"url"`
	Rating float64  `json:"rating"`
}

type gogSearchResponse struct {
	Products []gogProduct `json:"products"`
}

// GetGameInfo derives the game name from a gog.com/[en/]game/<slug> URL and
// searches the storefront for it. Searching with only the first word of the
// name casts a wider net; the best match is then picked against the full name.
// No matching product is a soft miss (nil, nil).
func (c *GogClient) GetGameInfo(ctx context.Context, gameURL string) (*models.StoreGameInfo, error) {
	gameName := gameURL
	if match := gogGameURLRe.FindStringSubmatch(gameURL); match != nil {
		gameName = strings.ReplaceAll(match[1], "_", " ")
	}
	searchTerm := firstWord(gameName)

	endpoint := c.baseURL + "/games/ajax/filtered?mediaType=game&search=" + url.QueryEscape(searchTerm)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Printf("[gog] api returned status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("gog api error: status %d", resp.StatusCode)
	}

	var out gogSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Products) == 0 {
		log.Printf("[gog] no products found for %s", gameURL)
		return nil, nil
	}

	best := bestMatch(out.Products, normalizeTitle(gameName))
	return &models.StoreGameInfo{Price: formatGogPrice(best.Price)}, nil
}

// bestMatch prefers an exact normalized-title match, then substring
// containment, then falls back to the first search result.
func bestMatch(products []gogProduct, normalizedName string) gogProduct {
	for _, p := range products {
		if normalizeTitle(p.Title) == normalizedName {
			return p
		}
	}
	for _, p := range products {
		if strings.Contains(normalizeTitle(p.Title), normalizedName) {
			return p
		}
	}
	return products[0]
}

// formatGogPrice keeps the discount breakdown only when one actually applies.
func formatGogPrice(p gogPrice) *models.StructuredPrice {
	if p.IsDiscounted && p.BaseAmount != p.FinalAmount {
		return &models.StructuredPrice{
			Original:           p.BaseAmount,
			Discounted:         p.FinalAmount,
			Currency:           p.Currency,
			Symbol:             p.Symbol,
			DiscountPercentage: p.DiscountPercentage,
		}
	}
	return &models.StructuredPrice{
		Amount:   p.Amount,
		Currency: p.Currency,
		Symbol:   p.Symbol,
	}
}

// normalizeTitle lowercases and collapses every non-alphanumeric run to a
// single space.
func normalizeTitle(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func firstWord(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
	if len(fields) == 0 {
		return name
	}
	return fields[0]
}
