package models

// StoreKey identifies a supported storefront in /games/game-info requests.
type StoreKey string

const (
	StoreSteam      StoreKey = "steam"
	StoreGog        StoreKey = "gog"
	StoreAppStore   StoreKey = "app_store"
	StoreGooglePlay StoreKey = "google_play"
)

// StoreRequest is one entry of the game-info batch.
type StoreRequest struct {
	Store StoreKey `json:"store" binding:"required"`
	URL   string   `json:"url" binding:"required,http_url"`
}

// GameInfoRequest is the /games/game-info request body.
type GameInfoRequest struct {
	Stores []StoreRequest `json:"stores" binding:"required,dive"`
}

// StructuredPrice is the GOG price shape. Discounted prices carry
// original/discounted/discountPercentage, regular prices carry amount.
type StructuredPrice struct {
	Amount             string `json:"amount,omitempty"`
	Original           string `json:"original,omitempty"`
	Discounted         string `json:"discounted,omitempty"`
	Currency           string `json:"currency"`
	Symbol             string `json:"symbol"`
	DiscountPercentage int    `json:"discountPercentage,omitempty"`
}

// StoreGameInfo is the normalized per-store answer. Price is either a flat
// string (Steam's integer-cents passthrough) or a *StructuredPrice (GOG);
// consumers must handle both shapes.
type StoreGameInfo struct {
	Price  any      `json:"price"`
	Rating *float64 `json:"rating,omitempty"`
	Votes  *int     `json:"votes,omitempty"`
}
