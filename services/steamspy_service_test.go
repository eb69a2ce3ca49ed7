package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteamSpyGetGameInfo(t *testing.T) {
	var capturedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"positive":600000,"negative":12000,"price":"1499"}`)
	}))
	defer server.Close()

	client := NewSteamSpyClient()
	client.baseURL = server.URL

	info, err := client.GetGameInfo(context.Background(), "https://store.steampowered.com/app/413150")
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "request=appdetails&appid=413150", capturedQuery)
	assert.Equal(t, "1499", info.Price)
	require.NotNil(t, info.Rating)
	assert.InDelta(t, 98.04, *info.Rating, 1e-9) // 600000/612000*100 to two decimals
	require.NotNil(t, info.Votes)
	assert.Equal(t, 612000, *info.Votes)
}

func TestSteamSpyZeroVotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"positive":0,"negative":0,"price":"0"}`)
	}))
	defer server.Close()

	client := NewSteamSpyClient()
	client.baseURL = server.URL

	info, err := client.GetGameInfo(context.Background(), "https://store.steampowered.com/app/1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, *info.Rating)
	assert.Equal(t, 0, *info.Votes)
}

func TestSteamSpyRejectsInvalidURL(t *testing.T) {
	client := NewSteamSpyClient()

	info, err := client.GetGameInfo(context.Background(), "https://example.com")
	assert.Nil(t, info)
	assert.ErrorContains(t, err, "invalid Steam URL")
}

func TestSteamSpyUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewSteamSpyClient()
	client.baseURL = server.URL

	_, err := client.GetGameInfo(context.Background(), "https://store.steampowered.com/app/42")
	assert.ErrorContains(t, err, "status 502")
}
