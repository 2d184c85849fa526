package world

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// Invalid-state errors. Every specific error wraps ErrInvalidState.
var (
	ErrInvalidState     = errors.New("invalid state")
	ErrAlreadyPopulated = fmt.Errorf("%w: map already populated", ErrInvalidState)
	ErrNoUnit           = fmt.Errorf("%w: tile has no unit", ErrInvalidState)
	ErrInvalidTarget    = fmt.Errorf("%w: tile is not a valid target", ErrInvalidState)
	ErrDuplicateTile    = fmt.Errorf("%w: duplicate tile coordinate", ErrInvalidState)
)

// ErrNoSpawnTile is returned when no open tile was found in a team's spawn band.
var ErrNoSpawnTile = errors.New("no open spawn tile")

// SpawnAttempts bounds the random draws made when looking for a spawn tile.
const SpawnAttempts = 64

// Hooks are invoked on state changes so a renderer can update its visuals.
// The map never waits on them.
type Hooks struct {
	OnStatus      func(t *Tile, from, to Status)
	OnUnitMoved   func(u *Unit, from, to *Tile)
	OnUnitRemoved func(u *Unit, from *Tile)
}

// Map holds every tile of one battle map.
type Map struct {
	Shape     Shape `json:"shape"`
	Size      int   `json:"size"`
	SeaLevel  int   `json:"sea_level"`
	MaxHeight int   `json:"max_height"`
	Seed      int64 `json:"seed"`
	Teams     int   `json:"teams"` // Number of spawn bands

	Hooks Hooks `json:"-"`

	tiles map[Coord]*Tile
	byID  map[string]*Tile
	order []*Tile // Row-major, fixed after SetTiles
}

// NewMap creates an empty map. Tiles are loaded once with SetTiles.
func NewMap(shape Shape, size, seaLevel, maxHeight int) *Map {
	return &Map{
		Shape:     shape,
		Size:      size,
		SeaLevel:  seaLevel,
		MaxHeight: maxHeight,
		Teams:     2,
	}
}

// SetTiles loads the tile set. It may only be called once per map;
// a re-roll builds a new Map.
func (m *Map) SetTiles(tiles []*Tile) error {
	if m.tiles != nil {
		return ErrAlreadyPopulated
	}

	byCoord := make(map[Coord]*Tile, len(tiles))
	byID := make(map[string]*Tile, len(tiles))
	for _, t := range tiles {
		if _, dup := byCoord[t.Coord]; dup {
			return fmt.Errorf("set tiles at (%d,%d): %w", t.Coord.Col, t.Coord.Row, ErrDuplicateTile)
		}
		byCoord[t.Coord] = t
		if t.ID != "" {
			byID[t.ID] = t
		}
	}

	order := make([]*Tile, len(tiles))
	copy(order, tiles)
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i].Coord, order[j].Coord
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	m.tiles = byCoord
	m.byID = byID
	m.order = order
	return nil
}

// Populated reports whether SetTiles has been called.
func (m *Map) Populated() bool {
	return m.tiles != nil
}

// Get returns the tile at the given coordinate, or nil if there is none.
func (m *Map) Get(coord Coord) *Tile {
	return m.tiles[coord]
}

// TileByID returns the tile with the given visual id, or nil.
func (m *Map) TileByID(id string) *Tile {
	return m.byID[id]
}

// Tiles returns all tiles in row-major order. The slice must not be modified.
func (m *Map) Tiles() []*Tile {
	return m.order
}

// TileCount returns the total number of tiles in the map.
func (m *Map) TileCount() int {
	return len(m.order)
}

// Contains reports whether t is a tile of this map.
func (m *Map) Contains(t *Tile) bool {
	return t != nil && m.tiles[t.Coord] == t
}

// Neighbors returns the existing tiles adjacent to t.
func (m *Map) Neighbors(t *Tile) []*Tile {
	out := make([]*Tile, 0, 6)
	for _, c := range t.Coord.Neighbors() {
		if n := m.tiles[c]; n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Placement returns the mesh position at the top of a tile: x and z span the
// ground plane, y is the tile height.
func (m *Map) Placement(t *Tile) (x, y, z float64) {
	px, pz := TileToPosition(t.Coord.Col, t.Coord.Row, m.Shape, m.Size)
	return px, float64(t.Height), pz
}

// SpawnBand returns the spawn band of a row. Rows are split evenly across
// the map's teams, first team at the lowest rows.
func (m *Map) SpawnBand(row int) Team {
	teams := m.Teams
	if teams < 1 {
		teams = 1
	}
	start, end := Extent(m.Shape, m.Size)
	span := end - start
	if span <= 0 {
		return 0
	}
	band := (row - start) * teams / span
	if band < 0 {
		band = 0
	}
	if band >= teams {
		band = teams - 1
	}
	return Team(band)
}

// RandomOpenTileForTeam draws tiles uniformly from the team's spawn band until
// one is unobstructed. After SpawnAttempts draws it gives up with ErrNoSpawnTile;
// callers may simply try again.
func (m *Map) RandomOpenTileForTeam(team Team, rng *rand.Rand) (*Tile, error) {
	var candidates []*Tile
	for _, t := range m.order {
		if m.SpawnBand(t.Coord.Row) == team {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("team %d has an empty spawn band: %w", team, ErrNoSpawnTile)
	}

	for attempt := 0; attempt < SpawnAttempts; attempt++ {
		t := candidates[rng.Intn(len(candidates))]
		if !t.Blocked() {
			return t, nil
		}
	}
	return nil, fmt.Errorf("team %d after %d attempts: %w", team, SpawnAttempts, ErrNoSpawnTile)
}

// PlaceUnit puts a new unit on an open tile.
func (m *Map) PlaceUnit(t *Tile, u *Unit) error {
	if u == nil {
		return ErrNoUnit
	}
	if !m.Contains(t) || t.Blocked() {
		return ErrInvalidTarget
	}
	t.Unit = u
	t.HasObstacle = true
	return nil
}

// MoveUnit transfers the unit on origin to destination. Reachability is the
// caller's concern; only the data-model transfer is checked here.
func (m *Map) MoveUnit(origin, destination *Tile) error {
	if origin == nil || origin.Unit == nil {
		return ErrNoUnit
	}
	if !m.Contains(origin) || !m.Contains(destination) || destination == origin || destination.Blocked() {
		return ErrInvalidTarget
	}

	u := origin.Unit
	origin.Unit = nil
	origin.HasObstacle = origin.Decorated()
	destination.Unit = u
	destination.HasObstacle = true

	if m.Hooks.OnUnitMoved != nil {
		m.Hooks.OnUnitMoved(u, origin, destination)
	}
	return nil
}

// RemoveUnit clears the tile's unit and returns it, or nil if the tile was empty.
// The obstacle flag is kept only if the tile is decorated.
func (m *Map) RemoveUnit(t *Tile) *Unit {
	if t == nil || t.Unit == nil {
		return nil
	}
	u := t.Unit
	t.Unit = nil
	t.HasObstacle = t.Decorated()
	u.Health = 0

	if m.Hooks.OnUnitRemoved != nil {
		m.Hooks.OnUnitRemoved(u, t)
	}
	return u
}

// UnitsOfTeam counts the units of a team on the map.
func (m *Map) UnitsOfTeam(team Team) int {
	n := 0
	for _, t := range m.order {
		if t.Unit != nil && t.Unit.Team == team {
			n++
		}
	}
	return n
}

// FindUnit returns the tile holding the unit with the given id, or nil.
func (m *Map) FindUnit(id string) *Tile {
	for _, t := range m.order {
		if t.Unit != nil && t.Unit.ID == id {
			return t
		}
	}
	return nil
}

// SetStatus changes a single tile's status.
func (m *Map) SetStatus(t *Tile, s Status) {
	if t.Status == s {
		return
	}
	from := t.Status
	t.Status = s
	if m.Hooks.OnStatus != nil {
		m.Hooks.OnStatus(t, from, s)
	}
}

// ApplyStatus rewrites every tile currently in status from to status to.
// Returns the number of tiles changed.
func (m *Map) ApplyStatus(from, to Status) int {
	if from == to {
		return 0
	}
	n := 0
	for _, t := range m.order {
		if t.Status == from {
			m.SetStatus(t, to)
			n++
		}
	}
	return n
}

// ClearStatus resets every tile to StatusNormal.
func (m *Map) ClearStatus() {
	for _, t := range m.order {
		m.SetStatus(t, StatusNormal)
	}
}

// TextureCounts returns a summary of texture distribution.
func (m *Map) TextureCounts() map[Texture]int {
	counts := make(map[Texture]int)
	for _, t := range m.order {
		counts[t.Texture]++
	}
	return counts
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(shape=%s, size=%d, tiles=%d, seed=%d)", ShapeName(m.Shape), m.Size, m.TileCount(), m.Seed)
}
