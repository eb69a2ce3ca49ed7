package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"regexp"
	"time"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

const steamSpyBaseURL = "https://steamspy.com/api.php"

var steamAppURLRe = regexp.MustCompile(`store\.steampowered\.com/app/(\d+)`)

// SteamSpyClient resolves a Steam store URL to review stats and a price via
// the SteamSpy appdetails endpoint.
type SteamSpyClient struct {
	http    *http.Client
	baseURL string
}

func NewSteamSpyClient() *SteamSpyClient {
	return &SteamSpyClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: steamSpyBaseURL,
	}
}

type steamSpyGameInfo struct {
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Price    string `json:"price"`
}

// GetGameInfo extracts the numeric app id from a store.steampowered.com URL
// and fetches its stats. A URL without an app id is a hard error. Rating is
// the positive-review percentage rounded to two decimals; price is SteamSpy's
// integer-cents string passed through verbatim.
func (c *SteamSpyClient) GetGameInfo(ctx context.Context, gameURL string) (*models.StoreGameInfo, error) {
	match := steamAppURLRe.FindStringSubmatch(gameURL)
	if match == nil {
		return nil, fmt.Errorf("invalid Steam URL: %s", gameURL)
	}
	appID := match[1]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?request=appdetails&appid="+appID, nil)
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
		log.Printf("[steamspy] api returned status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("steamspy api error: status %d", resp.StatusCode)
	}

	var info steamSpyGameInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	votes := info.Positive + info.Negative
	rating := 0.0
	if votes > 0 {
		rating = math.Round(float64(info.Positive)/float64(votes)*100*100) / 100
	}

	return &models.StoreGameInfo{
		Price:  info.Price,
		Rating: &rating,
		Votes:  &votes,
	}, nil
}
