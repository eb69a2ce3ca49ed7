package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

type fakeStoreClient struct {
	info *models.StoreGameInfo
	err  error
	urls []string
}

func (f *fakeStoreClient) GetGameInfo(_ context.Context, url string) (*models.StoreGameInfo, error) {
	f.urls = append(f.urls, url)
	return f.info, f.err
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestGetMultiStoreGameInfoMixedBatch(t *testing.T) {
	steam := &fakeStoreClient{info: &models.StoreGameInfo{
		Price:  "1499",
		Rating: floatPtr(97.12),
		Votes:  intPtr(120000),
	}}
	gog := &fakeStoreClient{err: errors.New("gog timeout")}
	service := NewStoreInfoService(map[models.StoreKey]StoreClient{
		models.StoreSteam: steam,
		models.StoreGog:   gog,
	})

	results := service.GetMultiStoreGameInfo(context.Background(), []models.StoreRequest{
		{Store: models.StoreSteam, URL: "https://store.steampowered.com/app/413150"},
		{Store: models.StoreGog, URL: "https://www.gog.com/en/game/stardew_valley"},
		{Store: models.StoreAppStore, URL: "https://apps.apple.com/app/id1406710800"},
	})

	require.Len(t, results, 3)
	require.NotNil(t, results["steam"])
	assert.Equal(t, "1499", results["steam"].Price)
	assert.Equal(t, 97.12, *results["steam"].Rating)

	// Failed lookups and stores with no client both come back as explicit nils.
	info, ok := results["gog"]
	assert.True(t, ok)
	assert.Nil(t, info)
	info, ok = results["app_store"]
	assert.True(t, ok)
	assert.Nil(t, info)
}

func TestGetMultiStoreGameInfoRoutesURLs(t *testing.T) {
	steam := &fakeStoreClient{info: &models.StoreGameInfo{}}
	service := NewStoreInfoService(map[models.StoreKey]StoreClient{
		models.StoreSteam: steam,
	})

	service.GetMultiStoreGameInfo(context.Background(), []models.StoreRequest{
		{Store: models.StoreSteam, URL: "https://store.steampowered.com/app/1145360"},
	})
	require.Len(t, steam.urls, 1)
	assert.Equal(t, "https://store.steampowered.com/app/1145360", steam.urls[0])
}

func TestGetMultiStoreGameInfoSoftMiss(t *testing.T) {
	// A client returning (nil, nil) means "store has no data", same shape as a
	// failure from the caller's point of view.
	gog := &fakeStoreClient{}
	service := NewStoreInfoService(map[models.StoreKey]StoreClient{
		models.StoreGog: gog,
	})

	results := service.GetMultiStoreGameInfo(context.Background(), []models.StoreRequest{
		{Store: models.StoreGog, URL: "https://www.gog.com/en/game/unknown_game"},
	})
	info, ok := results["gog"]
	assert.True(t, ok)
	assert.Nil(t, info)
}

func TestGetMultiStoreGameInfoEmptyBatch(t *testing.T) {
	service := NewStoreInfoService(nil)
	results := service.GetMultiStoreGameInfo(context.Background(), nil)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}
