package services

import (
	"context"
	"log"
	"sync"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

// StoreClient is the capability every storefront adapter implements.
// A hard error means the lookup itself failed; (nil, nil) is a soft miss.
type StoreClient interface {
	GetGameInfo(ctx context.Context, url string) (*models.StoreGameInfo, error)
}

// StoreInfoService fans a batch of store lookups out to the matching clients
// and merges the answers. Per-store failures become nil entries, never errors.
type StoreInfoService struct {
	clients map[models.StoreKey]StoreClient
}

func NewStoreInfoService(clients map[models.StoreKey]StoreClient) *StoreInfoService {
	return &StoreInfoService{clients: clients}
}

// GetMultiStoreGameInfo resolves each request in parallel. The response has
// one key per distinct store in the input; unknown stores and failed lookups
// map to nil.
func (s *StoreInfoService) GetMultiStoreGameInfo(ctx context.Context, requests []models.StoreRequest) map[string]*models.StoreGameInfo {
	results := make(map[string]*models.StoreGameInfo, len(requests))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, request := range requests {
		wg.Add(1)
		go func(request models.StoreRequest) {
			defer wg.Done()
			info := s.lookup(ctx, request)
			mu.Lock()
			results[string(request.Store)] = info
			mu.Unlock()
		}(request)
	}
	wg.Wait()

	return results
}

func (s *StoreInfoService) lookup(ctx context.Context, request models.StoreRequest) *models.StoreGameInfo {
	client, ok := s.clients[request.Store]
	if !ok {
		log.Printf("[storeinfo] no client for store %q", request.Store)
		return nil
	}
	info, err := client.GetGameInfo(ctx, request.URL)
	if err != nil {
		log.Printf("[storeinfo] %s lookup failed for %s: %v", request.Store, request.URL, err)
		return nil
	}
	return info
}
