// Battle map generation using simplex noise.
// Samples a height field, derives terrain textures from height, and scatters
// trees and stones. Every random draw comes from one generator seeded with the
// map seed, so a seed always reproduces the same map.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/sync/errgroup"

	"github.com/talgya/hex-tactics/internal/entropy"
)

// Height ratio thresholds relative to MaxHeight, checked in descending order.
const (
	RockyThreshold     = 0.8
	RoughThreshold     = 0.7
	VegetatedThreshold = 0.5
	SandyThreshold     = 0.3
)

const (
	noiseScale      = 0.1 // Grid index → noise space
	lowlandBias     = 1.5 // Power curve, favours low ground over peaks
	obstacleChance  = 0.8 // Draws above this place a decoration (~20%)
	maxStonesOnTile = 3
)

var (
	ErrInvalidConfig = errors.New("invalid generation config")
	ErrEmptyMap      = errors.New("generation produced no tiles")
)

// tileNamespace scopes the name-based UUIDs handed out as tile ids.
var tileNamespace = uuid.MustParse("5f0c4c1e-8a4b-4f8e-9a57-3c2d1b0e6f11")

// GenConfig holds map generation parameters.
type GenConfig struct {
	Shape     Shape
	Size      int   // Box side length, or circle radius in world units
	SeaLevel  int   // Subtracted from every height; tiles at or below 0 are sea
	MaxHeight int   // Height cap, also the reference for texture thresholds
	MinHeight int   // Added to every height before the sea level cut
	Seed      int64 // Random seed (0 = random)
	Workers   int   // Goroutines sampling heights (<= 1 samples inline)
}

// DefaultGenConfig returns the standard battle map configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Shape:     ShapeBox,
		Size:      16,
		SeaLevel:  3,
		MaxHeight: 10,
		MinHeight: 0,
		Seed:      0,
		Workers:   4,
	}
}

// SmallTestConfig returns a tiny, fixed-seed map for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Shape:     ShapeBox,
		Size:      8,
		SeaLevel:  0,
		MaxHeight: 10,
		MinHeight: 2,
		Seed:      42,
		Workers:   1,
	}
}

func (cfg GenConfig) validate() error {
	if cfg.Size <= 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidConfig, cfg.Size)
	}
	if cfg.MaxHeight <= 0 {
		return fmt.Errorf("%w: max height %d", ErrInvalidConfig, cfg.MaxHeight)
	}
	if cfg.Shape != ShapeBox && cfg.Shape != ShapeCircle {
		return fmt.Errorf("%w: shape %d", ErrInvalidConfig, cfg.Shape)
	}
	return nil
}

// SeedFromString turns a user supplied seed into a generator seed. Numeric
// strings are used as is; anything else is hashed.
func SeedFromString(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n != 0 {
		return n
	}
	seed := int64(xxhash.Sum64String(s) & math.MaxInt64)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Generate creates a complete battle map. A zero seed is replaced by a fresh
// one, which is logged and stored on the returned map.
func Generate(cfg GenConfig) (*Map, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = entropy.Seed(nil)
	}

	// The noise seed is the stream's first draw; decoration draws follow.
	rng := rand.New(rand.NewSource(seed))
	noise := opensimplex.New(rng.Int63())

	start, end := Extent(cfg.Shape, cfg.Size)
	var coords []Coord
	for row := start; row < end; row++ {
		for col := start; col < end; col++ {
			c := Coord{Col: col, Row: row}
			if InShape(c, cfg.Shape, cfg.Size) {
				coords = append(coords, c)
			}
		}
	}

	heights := sampleHeights(noise, coords, cfg)

	m := NewMap(cfg.Shape, cfg.Size, cfg.SeaLevel, cfg.MaxHeight)
	m.Seed = seed

	tiles := make([]*Tile, 0, len(coords))
	for i, c := range coords {
		h := heights[i]
		if h <= 0 {
			continue
		}
		t := &Tile{
			ID:      tileID(seed, c),
			Coord:   c,
			Height:  h,
			Texture: ClassifyTexture(h, cfg.MaxHeight),
		}
		decorate(rng, t)
		tiles = append(tiles, t)
	}

	if len(tiles) == 0 {
		return nil, fmt.Errorf("seed %d: %w", seed, ErrEmptyMap)
	}
	if err := m.SetTiles(tiles); err != nil {
		return nil, fmt.Errorf("load tiles: %w", err)
	}

	slog.Info("map generated",
		"shape", ShapeName(cfg.Shape),
		"size", cfg.Size,
		"sea_level", cfg.SeaLevel,
		"max_height", cfg.MaxHeight,
		"min_height", cfg.MinHeight,
		"seed", seed,
		"tiles", len(tiles),
	)
	return m, nil
}

// sampleHeights evaluates the height of every coordinate. Each worker writes a
// disjoint slice of the output; Wait is the only synchronisation point.
func sampleHeights(noise opensimplex.Noise, coords []Coord, cfg GenConfig) []int {
	heights := make([]int, len(coords))

	workers := cfg.Workers
	if workers <= 1 || len(coords) < workers {
		for i, c := range coords {
			heights[i] = heightAt(noise, c, cfg)
		}
		return heights
	}

	chunk := (len(coords) + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < len(coords); lo += chunk {
		lo := lo // per-iteration copy (go 1.21 loop semantics)
		hi := min(lo+chunk, len(coords))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				heights[i] = heightAt(noise, coords[i], cfg)
			}
			return nil
		})
	}
	_ = g.Wait() // Workers never fail.
	return heights
}

// heightAt maps noise at a grid index to an integer height.
func heightAt(noise opensimplex.Noise, c Coord, cfg GenConfig) int {
	n := (noise.Eval2(float64(c.Col)*noiseScale, float64(c.Row)*noiseScale) + 1) * 0.5
	n = math.Pow(clamp01(n), lowlandBias)

	h := math.Round(n*float64(cfg.MaxHeight) + float64(cfg.MinHeight) - float64(cfg.SeaLevel))
	return int(math.Min(h, float64(cfg.MaxHeight)))
}

// ClassifyTexture picks the terrain texture for a height.
func ClassifyTexture(height, maxHeight int) Texture {
	h, max := float64(height), float64(maxHeight)
	switch {
	case h > RockyThreshold*max:
		return TextureRocky
	case h > RoughThreshold*max:
		return TextureRough
	case h > VegetatedThreshold*max:
		return TextureVegetated
	case h > SandyThreshold*max:
		return TextureSandy
	default:
		return TextureLowland
	}
}

// decorate places a tree or a stone cluster on roughly one tile in five.
// The draw is consumed for every tile, lowland included, to keep the stream aligned.
func decorate(rng *rand.Rand, t *Tile) {
	if rng.Float64() <= obstacleChance {
		return
	}
	switch t.Texture {
	case TextureSandy, TextureRocky:
		t.Decoration = DecorationStones
		t.Stones = int(math.Pow(rng.Float64(), 0.45)*maxStonesOnTile) + 1
		if t.Stones > maxStonesOnTile {
			t.Stones = maxStonesOnTile
		}
		t.HasObstacle = true
	case TextureRough, TextureVegetated:
		t.Decoration = DecorationTree
		t.HasObstacle = true
	}
}

func tileID(seed int64, c Coord) string {
	name := fmt.Sprintf("%d:%d:%d", seed, c.Col, c.Row)
	return uuid.NewSHA1(tileNamespace, []byte(name)).String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
