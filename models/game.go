package models

// GameSummary is what a catalog search returns for each hit. Description is
// usually empty on search results and only filled by a detail lookup.
type GameSummary struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Released    string   `json:"released,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
	CoverURL    string   `json:"coverUrl,omitempty"`
	Description string   `json:"description,omitempty"`
}

// GameDetails augments a summary with the fields only the per-game detail
// endpoints return.
type GameDetails struct {
	GameSummary
	Website string      `json:"website,omitempty"`
	Stores  []StoreLink `json:"stores"`
}

// StoreLink points at a single storefront page for a game. Name comes from the
// reference cache, never from the upstream store link itself.
type StoreLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FullGameInfo is the response entity for /games/search: summary fields plus
// enrichment. Enrichment fields stay empty when the detail lookup fails.
type FullGameInfo struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Released    string      `json:"released"`
	Rating      float64     `json:"rating"`
	Genres      []string    `json:"genres"`
	Platforms   []string    `json:"platforms"`
	Stores      []StoreLink `json:"stores"`
	Website     string      `json:"website"`
	Description string      `json:"description"`
}

// SearchResponse is the /games/search response body.
type SearchResponse struct {
	Games []FullGameInfo `json:"games"`
}

// SearchParams carries human-readable filters into the catalog client, which
// translates genre/platform/tag names to upstream numeric ids.
type SearchParams struct {
	Query      string
	Page       int
	PageSize   int
	Genres     []string
	Platforms  []string
	Tags       []string
	Dates      []string
	Developers []string
	Publishers []string
}

// QueryAnalysis is the LLM classification of a user query.
type QueryAnalysis struct {
	IsDirectGameSearch bool `json:"isDirectGameSearch"`
}

// ExtractedSearchParams is the structured form the LLM distills out of a
// descriptive query. All slices may be empty.
type ExtractedSearchParams struct {
	Genres          []string `json:"genres"`
	Platforms       []string `json:"platforms"`
	Tags            []string `json:"tags"`
	Dates           []string `json:"dates"`
	Developers      []string `json:"developers"`
	Publishers      []string `json:"publishers"`
	SuggestedTitles []string `json:"suggested_titles"`
}

// RefEntry is one row of a catalog reference endpoint (/stores, /genres,
// /platforms, /tags): an upstream-scoped id and a display name.
type RefEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
