// Army placement. Each team's units are seeded onto open tiles of its spawn band.
package world

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// spawnRetries is how many times a failed spawn-tile search is repeated
// before the spawn is reported as failed.
const spawnRetries = 3

// ArmyConfig controls the initial armies.
type ArmyConfig struct {
	Teams        int
	UnitsPerTeam int
	Health       int
}

// DefaultArmyConfig returns two teams of three units.
func DefaultArmyConfig() ArmyConfig {
	return ArmyConfig{
		Teams:        2,
		UnitsPerTeam: 3,
		Health:       10,
	}
}

// SpawnArmies places UnitsPerTeam units for every team. Names are drawn from
// rng, so a seeded rng places and names the same armies every time.
func SpawnArmies(m *Map, rng *rand.Rand, cfg ArmyConfig) ([]*Unit, error) {
	if cfg.Teams > 0 {
		m.Teams = cfg.Teams
	}

	names := generateNames(rng, m.Teams*cfg.UnitsPerTeam)
	units := make([]*Unit, 0, len(names))
	for team := 0; team < m.Teams; team++ {
		for i := 0; i < cfg.UnitsPerTeam; i++ {
			name := names[team*cfg.UnitsPerTeam+i]
			u, err := SpawnUnit(m, rng, Team(team), name, cfg.Health)
			if err != nil {
				return units, fmt.Errorf("spawn %s: %w", name, err)
			}
			units = append(units, u)
		}
	}
	return units, nil
}

// SpawnUnit creates a unit and places it on a random open tile of the team's band.
func SpawnUnit(m *Map, rng *rand.Rand, team Team, name string, health int) (*Unit, error) {
	var (
		tile *Tile
		err  error
	)
	for try := 0; try < spawnRetries; try++ {
		tile, err = m.RandomOpenTileForTeam(team, rng)
		if err == nil || !errors.Is(err, ErrNoSpawnTile) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	u := &Unit{
		ID:     uuid.NewString(),
		Team:   team,
		Name:   name,
		Health: health,
	}
	if err := m.PlaceUnit(tile, u); err != nil {
		return nil, err
	}
	return u, nil
}

// generateNames produces unit names by combining syllables.
func generateNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Ash", "Stone", "Black", "Silver", "Red", "Grey",
		"Storm", "Thorn", "Oak", "Frost", "Bright", "Wolf", "Raven",
	}
	suffixes := []string{
		"guard", "blade", "helm", "shield", "fang", "brand",
		"spear", "claw", "ward", "hand", "bow", "crest",
	}

	used := make(map[string]bool)
	names := make([]string, 0, count)

	for len(names) < count {
		name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
		if used[name] {
			name = fmt.Sprintf("%s %d", name, len(names)+1)
		}
		used[name] = true
		names = append(names, name)
	}

	return names
}
