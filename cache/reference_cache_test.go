package reference_cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

func populateFixture() {
	Populate(
		[]models.RefEntry{{ID: 1, Name: "Steam"}, {ID: 5, Name: "GOG"}},
		[]models.RefEntry{{ID: 4, Name: "Action"}, {ID: 14, Name: "Simulation"}},
		[]models.RefEntry{{ID: 4, Name: "PC"}, {ID: 187, Name: "PlayStation 5"}},
		[]models.RefEntry{{ID: 7, Name: "Multiplayer"}, {ID: 83, Name: "Farming"}},
	)
}

func TestLookupsAreCaseInsensitive(t *testing.T) {
	Reset()
	populateFixture()

	id, ok := GenreID("simulation")
	assert.True(t, ok)
	assert.Equal(t, 14, id)

	id, ok = PlatformID("PLAYSTATION 5")
	assert.True(t, ok)
	assert.Equal(t, 187, id)

	id, ok = TagID("fArMiNg")
	assert.True(t, ok)
	assert.Equal(t, 83, id)
}

func TestUnknownNamesMiss(t *testing.T) {
	Reset()
	populateFixture()

	_, ok := GenreID("Grand Strategy")
	assert.False(t, ok)

	// Whitespace-exact: a trailing space is a different name.
	_, ok = GenreID("Action ")
	assert.False(t, ok)
}

func TestStoreName(t *testing.T) {
	Reset()
	populateFixture()

	assert.Equal(t, "GOG", StoreName(5))
	assert.Equal(t, "", StoreName(999))
}

func TestReadyTransitions(t *testing.T) {
	Reset()
	assert.False(t, Ready())
	populateFixture()
	assert.True(t, Ready())
}
