package pathfind

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hex-tactics/internal/world"
)

// buildMap turns a layout into a box map. Each string is one row, row 0 first:
// '.' lowland, 'R' rocky, '#' a tree, 'u' a unit of team 1.
func buildMap(t *testing.T, layout ...string) *world.Map {
	t.Helper()
	m := world.NewMap(world.ShapeBox, len(layout), 0, 10)
	var tiles []*world.Tile
	for row, line := range layout {
		for col, ch := range line {
			tile := &world.Tile{Coord: world.Coord{Col: col, Row: row}, Height: 5}
			switch ch {
			case 'R':
				tile.Texture = world.TextureRocky
			case '#':
				tile.Texture = world.TextureVegetated
				tile.Decoration = world.DecorationTree
				tile.HasObstacle = true
			case 'u':
				tile.Unit = &world.Unit{ID: "enemy", Team: 1, Health: 10}
				tile.HasObstacle = true
			}
			tiles = append(tiles, tile)
		}
	}
	require.NoError(t, m.SetTiles(tiles))
	return m
}

func at(m *world.Map, col, row int) *world.Tile {
	return m.Get(world.Coord{Col: col, Row: row})
}

func coordsOf(tiles []*world.Tile) []world.Coord {
	out := make([]world.Coord, len(tiles))
	for i, t := range tiles {
		out[i] = t.Coord
	}
	return out
}

func TestReachables_Budget(t *testing.T) {
	m := buildMap(t,
		"...",
		"...",
		"...",
	)
	got := Reachables(m, at(m, 0, 0), 2, 0)

	assert.ElementsMatch(t, []world.Coord{
		{Col: 1, Row: 0}, {Col: 0, Row: 1},
		{Col: 2, Row: 0}, {Col: 1, Row: 1}, {Col: 1, Row: 2}, {Col: 0, Row: 2},
	}, coordsOf(got))

	// Cost one tiles settle before cost two tiles.
	assert.ElementsMatch(t, []world.Coord{{Col: 1, Row: 0}, {Col: 0, Row: 1}}, coordsOf(got[:2]))

	set := Coords(got)
	assert.False(t, set.Has(world.Coord{Col: 0, Row: 0}))
	assert.False(t, set.Has(world.Coord{Col: 2, Row: 1}))
	assert.False(t, set.Has(world.Coord{Col: 2, Row: 2}))
}

func TestReachables_ZeroBudget(t *testing.T) {
	m := buildMap(t, "..", "..")
	assert.Empty(t, Reachables(m, at(m, 0, 0), 0, 0))
	assert.Empty(t, Reachables(m, &world.Tile{}, 3, 0))
}

func TestReachables_BlockedTilesNotEntered(t *testing.T) {
	m := buildMap(t,
		"...",
		"###",
		"...",
	)
	got := Reachables(m, at(m, 0, 0), 10, 0)
	assert.ElementsMatch(t, []world.Coord{{Col: 1, Row: 0}, {Col: 2, Row: 0}}, coordsOf(got))
}

func TestReachables_DifficultTerrain(t *testing.T) {
	m := buildMap(t,
		".R.",
		"...",
		"...",
	)
	origin := at(m, 0, 0)

	// Rocky costs 2 at divisor 0.5, so (2,0) is 3 away either way.
	slow := Coords(Reachables(m, origin, 2, 0.5))
	assert.True(t, slow.Has(world.Coord{Col: 1, Row: 0}))
	assert.False(t, slow.Has(world.Coord{Col: 2, Row: 0}))

	uniform := Coords(Reachables(m, origin, 2, 0))
	assert.True(t, uniform.Has(world.Coord{Col: 2, Row: 0}))

	// A divisor above one makes rocky ground cheaper.
	fast := Coords(Reachables(m, origin, 1.5, 2))
	assert.True(t, fast.Has(world.Coord{Col: 2, Row: 0}))
}

func TestStepCost(t *testing.T) {
	rocky := &world.Tile{Texture: world.TextureRocky}
	rough := &world.Tile{Texture: world.TextureRough}
	sandy := &world.Tile{Texture: world.TextureSandy}

	assert.Equal(t, 2.0, StepCost(rocky, 0.5))
	assert.Equal(t, 2.0, StepCost(rough, 0.5))
	assert.Equal(t, 1.0, StepCost(sandy, 0.5))
	assert.Equal(t, 1.0, StepCost(rocky, 0))
	assert.Equal(t, 1.0, StepCost(rocky, -1))
	assert.Equal(t, 5.0, PathCost([]*world.Tile{rocky, sandy, rough}, 0.5))
}

func TestFindPath_Straight(t *testing.T) {
	m := buildMap(t,
		"....",
		"....",
		"....",
		"....",
	)
	path := FindPath(m, at(m, 0, 0), at(m, 3, 0), 0)
	assert.Equal(t, []world.Coord{{Col: 1, Row: 0}, {Col: 2, Row: 0}, {Col: 3, Row: 0}}, coordsOf(path))
}

func TestFindPath_AvoidsDifficultTerrain(t *testing.T) {
	m := buildMap(t,
		".R.",
		"...",
		"...",
	)
	path := FindPath(m, at(m, 0, 0), at(m, 2, 0), 0.25)
	require.NotEmpty(t, path)
	assert.Equal(t, world.Coord{Col: 2, Row: 0}, path[len(path)-1].Coord)
	assert.InDelta(t, 3.0, PathCost(path, 0.25), 1e-9)
	for _, step := range path {
		assert.NotEqual(t, world.TextureRocky, step.Texture)
	}
}

func TestFindPath_NoPath(t *testing.T) {
	m := buildMap(t,
		"...",
		"###",
		"...",
	)
	assert.Nil(t, FindPath(m, at(m, 0, 0), at(m, 0, 2), 0))
	assert.Nil(t, FindPath(m, at(m, 0, 0), at(m, 0, 0), 0))
}

func TestFindPath_OccupiedDestination(t *testing.T) {
	m := buildMap(t,
		"...",
		"...",
		"..u",
	)
	dest := at(m, 2, 2)
	path := FindPath(m, at(m, 0, 0), dest, 0)
	require.NotEmpty(t, path)
	assert.Same(t, dest, path[len(path)-1])
	assert.False(t, Coords(Reachables(m, at(m, 0, 0), 10, 0)).Has(dest.Coord))
}

func TestReachables_CostMonotonic(t *testing.T) {
	m := randomMap(t, rand.New(rand.NewSource(8)), 10)
	origin := firstOpen(m)

	got := Reachables(m, origin, 6, 0.5)
	require.NotEmpty(t, got)

	prev := 0.0
	for _, tile := range got {
		c := PathCost(FindPath(m, origin, tile, 0.5), 0.5)
		assert.GreaterOrEqual(t, c+costEpsilon, prev, "%v settled out of order", tile.Coord)
		assert.LessOrEqual(t, c, 6+costEpsilon)
		prev = c
	}

	// A larger budget never loses tiles.
	wider := Coords(Reachables(m, origin, 8, 0.5))
	for _, tile := range got {
		assert.True(t, wider.Has(tile.Coord))
	}
}

func TestFindPath_MatchesExhaustiveSearch(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := randomMap(t, rng, 7)
		origin := firstOpen(m)
		want := relaxAll(m, origin, 0.5)

		for _, dest := range m.Tiles() {
			if dest == origin || dest.Blocked() {
				continue
			}
			path := FindPath(m, origin, dest, 0.5)
			best, ok := want[dest.Coord]
			if !ok {
				assert.Nil(t, path, "seed %d: %v should be unreachable", seed, dest.Coord)
				continue
			}
			require.NotNil(t, path, "seed %d: no path to %v", seed, dest.Coord)
			assert.InDelta(t, best, PathCost(path, 0.5), 1e-9, "seed %d: %v", seed, dest.Coord)

			// Every step is adjacent to the previous one.
			prev := origin
			for _, step := range path {
				assert.True(t, world.IsNeighbor(prev.Coord, step.Coord))
				prev = step
			}
		}

		reach := Coords(Reachables(m, origin, 4, 0.5))
		for c, d := range want {
			assert.Equal(t, d <= 4+costEpsilon, reach.Has(c), "seed %d: %v at cost %.2f", seed, c, d)
		}
	}
}

func TestNeighbors(t *testing.T) {
	m := buildMap(t,
		"...",
		"...",
		"...",
	)
	assert.Len(t, Neighbors(m, at(m, 1, 1), 1, false), 6)
	assert.Len(t, Neighbors(m, at(m, 0, 0), 2, false), 6)
	assert.Empty(t, Neighbors(m, at(m, 0, 0), 0, false))
}

func TestNeighbors_IncludeBlocked(t *testing.T) {
	m := buildMap(t,
		".#.",
		"#..",
		"...",
	)
	origin := at(m, 0, 0)

	assert.Empty(t, Neighbors(m, origin, 2, false))

	ring := Coords(Neighbors(m, origin, 1, true))
	assert.True(t, ring.Has(world.Coord{Col: 1, Row: 0}))
	assert.True(t, ring.Has(world.Coord{Col: 0, Row: 1}))
	assert.Equal(t, 2, ring.Size())

	// Blocked tiles are expanded too when included.
	two := Coords(Neighbors(m, origin, 2, true))
	assert.True(t, two.Has(world.Coord{Col: 2, Row: 0}))
	assert.True(t, two.Has(world.Coord{Col: 0, Row: 2}))
}

// randomMap scatters rocky tiles and trees over a size×size box. The corner
// (0,0) and its neighbors stay open so a search from there always has room.
func randomMap(t *testing.T, rng *rand.Rand, size int) *world.Map {
	t.Helper()
	layout := make([]string, size)
	for row := range layout {
		line := make([]byte, size)
		for col := range line {
			switch r := rng.Float64(); {
			case col+row <= 1:
				line[col] = '.'
			case r < 0.15:
				line[col] = '#'
			case r < 0.4:
				line[col] = 'R'
			default:
				line[col] = '.'
			}
		}
		layout[row] = string(line)
	}
	return buildMap(t, layout...)
}

func firstOpen(m *world.Map) *world.Tile {
	for _, tile := range m.Tiles() {
		if !tile.Blocked() {
			return tile
		}
	}
	return nil
}

// relaxAll computes exact costs from origin to every open tile by relaxing
// every edge until nothing changes.
func relaxAll(m *world.Map, origin *world.Tile, divisor float64) map[world.Coord]float64 {
	dist := map[world.Coord]float64{origin.Coord: 0}
	for changed := true; changed; {
		changed = false
		for _, u := range m.Tiles() {
			du, ok := dist[u.Coord]
			if !ok {
				continue
			}
			for _, v := range m.Neighbors(u) {
				if v.Blocked() {
					continue
				}
				nd := du + StepCost(v, divisor)
				if old, ok := dist[v.Coord]; !ok || nd < old-1e-12 {
					dist[v.Coord] = nd
					changed = true
				}
			}
		}
	}
	delete(dist, origin.Coord)
	return dist
}
