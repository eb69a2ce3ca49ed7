package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	reference_cache "github.com/Simokod/GameSearchEngine-WIP/cache"
	"github.com/Simokod/GameSearchEngine-WIP/models"
)

const rawgBaseURL = "https://api.rawg.io/api"

var errRawgNotFound = errors.New("rawg: not found")

// RawgClient talks to the RAWG game catalog. It owns the warm reference
// caches (stores, genres, platforms, tags) used to translate human-readable
// filter names into RAWG's numeric ids.
type RawgClient struct {
	http      *http.Client
	apiKey    string
	baseURL   string
	initGroup singleflight.Group
}

func NewRawgClient(apiKey string) *RawgClient {
	return &RawgClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: rawgBaseURL,
	}
}

// ── Reference caches ─────────────────────────────────────────────────────────

// InitializeCache populates the four reference maps from RAWG. Idempotent;
// concurrent first callers join a single in-flight initialization.
func (c *RawgClient) InitializeCache(ctx context.Context) error {
	if reference_cache.Ready() {
		return nil
	}
	if c.apiKey == "" {
		return errors.New("RAWG API key not configured")
	}

	_, err, _ := c.initGroup.Do("reference", func() (any, error) {
		if reference_cache.Ready() {
			return nil, nil
		}
		stores, err := c.fetchReference(ctx, "/stores")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize stores cache: %w", err)
		}
		genres, err := c.fetchReference(ctx, "/genres")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize genres cache: %w", err)
		}
		platforms, err := c.fetchReference(ctx, "/platforms")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize platforms cache: %w", err)
		}
		tags, err := c.fetchReference(ctx, "/tags")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tags cache: %w", err)
		}
		reference_cache.Populate(stores, genres, platforms, tags)
		log.Println("[rawg] reference caches initialized")
		return nil, nil
	})
	return err
}

func (c *RawgClient) fetchReference(ctx context.Context, path string) ([]models.RefEntry, error) {
	var out struct {
		Results []models.RefEntry `json:"results"`
	}
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetStoreName is a synchronous cache lookup; "" for unknown ids.
func (c *RawgClient) GetStoreName(storeID int) string {
	return reference_cache.StoreName(storeID)
}

// ── Search ───────────────────────────────────────────────────────────────────

// SearchGames queries the catalog. Genre/platform/tag names are translated to
// numeric ids through the reference cache; names the catalog does not know are
// dropped silently, and empty filter categories are omitted entirely.
func (c *RawgClient) SearchGames(ctx context.Context, params models.SearchParams) ([]models.GameSummary, error) {
	if err := c.InitializeCache(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("search", params.Query)
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(params.PageSize))
	}
	if ids := resolveIDs(params.Genres, reference_cache.GenreID); ids != "" {
		q.Set("genres", ids)
	}
	if ids := resolveIDs(params.Platforms, reference_cache.PlatformID); ids != "" {
		q.Set("platforms", ids)
	}
	if ids := resolveIDs(params.Tags, reference_cache.TagID); ids != "" {
		q.Set("tags", ids)
	}
	if len(params.Dates) > 0 {
		q.Set("dates", strings.Join(params.Dates, ","))
	}
	if len(params.Developers) > 0 {
		q.Set("developers", strings.Join(params.Developers, ","))
	}
	if len(params.Publishers) > 0 {
		q.Set("publishers", strings.Join(params.Publishers, ","))
	}

	log.Printf("[rawg] searching games: %s", q.Encode())
	var out rawgSearchResponse
	if err := c.get(ctx, "/games", q, &out); err != nil {
		return nil, fmt.Errorf("failed to search games: %w", err)
	}

	games := make([]models.GameSummary, 0, len(out.Results))
	for _, g := range out.Results {
		games = append(games, g.toSummary())
	}
	return games, nil
}

func resolveIDs(names []string, lookup func(string) (int, bool)) string {
	var ids []string
	for _, name := range names {
		if id, ok := lookup(name); ok {
			ids = append(ids, strconv.Itoa(id))
		}
	}
	return strings.Join(ids, ",")
}

// ── Details ──────────────────────────────────────────────────────────────────

// GetGameDetails fetches a game's detail record and its store links in one
// logical call. Store links whose store_id is not in the reference cache are
// dropped. A hard upstream not-found yields (nil, nil).
func (c *RawgClient) GetGameDetails(ctx context.Context, id int) (*models.GameDetails, error) {
	if err := c.InitializeCache(ctx); err != nil {
		return nil, err
	}

	var detail rawgGame
	if err := c.get(ctx, fmt.Sprintf("/games/%d", id), nil, &detail); err != nil {
		if errors.Is(err, errRawgNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch game details: %w", err)
	}

	var storesOut rawgStoresResponse
	if err := c.get(ctx, fmt.Sprintf("/games/%d/stores", id), nil, &storesOut); err != nil {
		return nil, fmt.Errorf("failed to fetch game stores: %w", err)
	}

	stores := make([]models.StoreLink, 0, len(storesOut.Results))
	for _, s := range storesOut.Results {
		name := reference_cache.StoreName(s.StoreID)
		if name == "" {
			continue
		}
		stores = append(stores, models.StoreLink{Name: name, URL: s.URL})
	}

	return &models.GameDetails{
		GameSummary: detail.toSummary(),
		Website:     detail.Website,
		Stores:      stores,
	}, nil
}

// ── Wire types & transport ───────────────────────────────────────────────────

type rawgGame struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Released        string  `json:"released"`
	Rating          float64 `json:"rating"`
	BackgroundImage string  `json:"background_image"`
	Description     string  `json:"description"`
	Website         string  `json:"website"`
	Genres          []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Platforms []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
}

func (g rawgGame) toSummary() models.GameSummary {
	summary := models.GameSummary{
		ID:          g.ID,
		Name:        g.Name,
		Released:    g.Released,
		Rating:      g.Rating,
		CoverURL:    g.BackgroundImage,
		Description: g.Description,
	}
	for _, genre := range g.Genres {
		summary.Genres = append(summary.Genres, genre.Name)
	}
	for _, p := range g.Platforms {
		summary.Platforms = append(summary.Platforms, p.Platform.Name)
	}
	return summary
}

type rawgSearchResponse struct {
	Results []rawgGame `json:"results"`
}

type rawgStoresResponse struct {
	Results []struct {
		StoreID int    `json:"store_id"`
		URL     string `json:"url"`
	} `json:"results"`
}

func (c *RawgClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errRawgNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.Printf("[rawg] api returned status %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("rawg api error: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
