package reference_cache

import (
	"strings"
	"sync"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

// ── Catalog reference data ───────────────────────────────────────────────────
// Four id→entry maps (stores, genres, platforms, tags) populated once per
// process from the catalog reference endpoints, plus lowercase name→id indexes
// so name resolution stays O(1). Never invalidated during a process lifetime.

type refSet struct {
	byID   map[int]models.RefEntry
	byName map[string]int
}

func newRefSet(entries []models.RefEntry) refSet {
	s := refSet{
		byID:   make(map[int]models.RefEntry, len(entries)),
		byName: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		s.byID[e.ID] = e
		s.byName[strings.ToLower(e.Name)] = e.ID
	}
	return s
}

var (
	mu        sync.RWMutex
	populated bool
	stores    refSet
	genres    refSet
	platforms refSet
	tags      refSet
)

// Ready reports whether Populate has run.
func Ready() bool {
	mu.RLock()
	defer mu.RUnlock()
	return populated
}

// Populate installs all four reference sets at once.
func Populate(storeEntries, genreEntries, platformEntries, tagEntries []models.RefEntry) {
	mu.Lock()
	defer mu.Unlock()
	stores = newRefSet(storeEntries)
	genres = newRefSet(genreEntries)
	platforms = newRefSet(platformEntries)
	tags = newRefSet(tagEntries)
	populated = true
}

// StoreName returns the display name for a store id, or "" when unknown.
func StoreName(id int) string {
	mu.RLock()
	defer mu.RUnlock()
	return stores.byID[id].Name
}

// GenreID resolves a genre name case-insensitively.
func GenreID(name string) (int, bool) {
	mu.RLock()
	defer mu.RUnlock()
	id, ok := genres.byName[strings.ToLower(name)]
	return id, ok
}

// PlatformID resolves a platform name case-insensitively.
func PlatformID(name string) (int, bool) {
	mu.RLock()
	defer mu.RUnlock()
	id, ok := platforms.byName[strings.ToLower(name)]
	return id, ok
}

// TagID resolves a tag name case-insensitively.
func TagID(name string) (int, bool) {
	mu.RLock()
	defer mu.RUnlock()
	id, ok := tags.byName[strings.ToLower(name)]
	return id, ok
}

// Reset clears everything. Test helper only; production code never invalidates.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	populated = false
	stores = refSet{}
	genres = refSet{}
	platforms = refSet{}
	tags = refSet{}
}
