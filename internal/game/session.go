// Package game ties a generated map, its armies and the input controllers
// into one playable session.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/hex-tactics/internal/combat"
	"github.com/talgya/hex-tactics/internal/controls"
	"github.com/talgya/hex-tactics/internal/entropy"
	"github.com/talgya/hex-tactics/internal/world"
)

// armySeedOffset separates the army stream from the terrain stream.
const armySeedOffset = 300

// Config holds everything needed to start a session.
type Config struct {
	Gen    world.GenConfig
	Army   world.ArmyConfig
	Combat combat.Config
}

// DefaultConfig returns the standard session configuration.
func DefaultConfig() Config {
	return Config{
		Gen:    world.DefaultGenConfig(),
		Army:   world.DefaultArmyConfig(),
		Combat: combat.DefaultConfig(),
	}
}

// Session is one running game.
type Session struct {
	Config   Config
	Map      *world.Map
	Units    []*world.Unit
	Controls *controls.Controls
	Quit     bool

	seeds *entropy.Client
}

// NewSession generates a map, spawns the armies and wires the controllers.
// seeds may be nil; fresh seeds then come from crypto/rand.
func NewSession(cfg Config, seeds *entropy.Client, picker controls.Picker) (*Session, error) {
	s := &Session{Config: cfg, seeds: seeds}

	m, units, err := s.build(cfg.Gen.Seed)
	if err != nil {
		return nil, err
	}
	s.Map = m
	s.Units = units

	ctrl := combat.NewController(m, cfg.Combat)
	s.Controls = controls.New(ctrl, picker)
	s.Controls.OnQuit = func() { s.Quit = true }
	return s, nil
}

// Reroll discards the current map and builds a new one. A zero seed draws a
// fresh one.
func (s *Session) Reroll(seed int64) error {
	m, units, err := s.build(seed)
	if err != nil {
		return err
	}
	s.Map = m
	s.Units = units
	s.Controls.SetMap(m)
	return nil
}

// Seed returns the resolved seed of the current map.
func (s *Session) Seed() int64 {
	return s.Map.Seed
}

func (s *Session) build(seed int64) (*world.Map, []*world.Unit, error) {
	if seed == 0 {
		seed = entropy.Seed(s.seeds)
	}
	gen := s.Config.Gen
	gen.Seed = seed

	m, err := world.Generate(gen)
	if err != nil {
		return nil, nil, fmt.Errorf("generate map: %w", err)
	}

	rng := rand.New(rand.NewSource(seed + armySeedOffset))
	units, err := world.SpawnArmies(m, rng, s.Config.Army)
	if err != nil {
		return nil, nil, fmt.Errorf("spawn armies: %w", err)
	}

	slog.Info("session ready",
		"seed", seed,
		"tiles", m.TileCount(),
		"units", len(units),
		"teams", m.Teams,
	)
	return m, units, nil
}
