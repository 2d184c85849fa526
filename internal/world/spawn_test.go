package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnArmies(t *testing.T) {
	m := flatMap(t, 8)
	units, err := SpawnArmies(m, rand.New(rand.NewSource(11)), DefaultArmyConfig())
	require.NoError(t, err)
	require.Len(t, units, 6)

	ids := make(map[string]bool)
	for _, u := range units {
		tile := m.FindUnit(u.ID)
		require.NotNil(t, tile, "unit %s not on the map", u.Name)
		assert.Equal(t, u.Team, m.SpawnBand(tile.Coord.Row))
		assert.True(t, tile.HasObstacle)
		assert.Equal(t, 10, u.Health)
		assert.NotEmpty(t, u.Name)
		ids[u.ID] = true
	}
	assert.Len(t, ids, 6)
	assert.Equal(t, 3, m.UnitsOfTeam(0))
	assert.Equal(t, 3, m.UnitsOfTeam(1))
}

func TestSpawnArmies_SameSeedSamePlacement(t *testing.T) {
	place := func() map[Coord]string {
		m := flatMap(t, 8)
		_, err := SpawnArmies(m, rand.New(rand.NewSource(5)), DefaultArmyConfig())
		require.NoError(t, err)
		out := make(map[Coord]string)
		for _, tile := range m.Tiles() {
			if tile.Unit != nil {
				out[tile.Coord] = tile.Unit.Name
			}
		}
		return out
	}
	assert.Equal(t, place(), place())
}

func TestSpawnArmies_SetsTeamCount(t *testing.T) {
	m := flatMap(t, 9)
	cfg := ArmyConfig{Teams: 3, UnitsPerTeam: 2, Health: 4}
	_, err := SpawnArmies(m, rand.New(rand.NewSource(1)), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Teams)
	for team := 0; team < 3; team++ {
		assert.Equal(t, 2, m.UnitsOfTeam(Team(team)))
	}
}

func TestSpawnUnit_BandFull(t *testing.T) {
	m := flatMap(t, 2)
	for _, tile := range m.Tiles() {
		tile.Decoration = DecorationStones
		tile.Stones = 1
		tile.HasObstacle = true
	}
	_, err := SpawnUnit(m, rand.New(rand.NewSource(1)), 0, "Ashward", 10)
	assert.ErrorIs(t, err, ErrNoSpawnTile)
}

func TestGenerateNames_Unique(t *testing.T) {
	names := generateNames(rand.New(rand.NewSource(2)), 200)
	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate name %q", n)
		seen[n] = true
	}
}
