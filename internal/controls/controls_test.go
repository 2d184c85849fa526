package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hex-tactics/internal/combat"
	"github.com/talgya/hex-tactics/internal/world"
)

func testMap(t *testing.T, size int) *world.Map {
	t.Helper()
	m := world.NewMap(world.ShapeBox, size, 0, 10)
	var tiles []*world.Tile
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			tiles = append(tiles, &world.Tile{Coord: world.Coord{Col: col, Row: row}, Height: 3})
		}
	}
	require.NoError(t, m.SetTiles(tiles))
	return m
}

func pointer(m *world.Map, col, row, button int) PointerEvent {
	x, _, z := m.Placement(m.Get(world.Coord{Col: col, Row: row}))
	return PointerEvent{X: x, Y: z, Button: button}
}

func TestPlanarPicker(t *testing.T) {
	m := testMap(t, 5)
	p := PlanarPicker{Map: m}

	for _, tile := range m.Tiles() {
		x, _, z := m.Placement(tile)
		assert.Same(t, tile, p.Pick(PointerEvent{X: x + 0.2, Y: z + 0.2}))
	}
	assert.Nil(t, p.Pick(PointerEvent{X: 100, Y: 100}))
	assert.Nil(t, PlanarPicker{}.Pick(PointerEvent{}))
}

func TestControls_ClickSelectsAndMoves(t *testing.T) {
	m := testMap(t, 5)
	require.NoError(t, m.PlaceUnit(m.Get(world.Coord{Col: 0, Row: 0}), &world.Unit{ID: "u", Name: "Oakhelm"}))
	c := New(combat.NewController(m, combat.DefaultConfig()), nil)

	res, err := c.HandleMouseDown(pointer(m, 0, 0, ButtonLeft))
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, combat.StateUnitSelected, c.Combat.State())

	c.HandlePointerMove(pointer(m, 1, 0, ButtonLeft))
	assert.Equal(t, world.StatusTarget, m.Get(world.Coord{Col: 1, Row: 0}).Status)

	res, err = c.HandleMouseDown(pointer(m, 1, 0, ButtonLeft))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Oakhelm", m.Get(world.Coord{Col: 1, Row: 0}).Unit.Name)
}

func TestControls_IgnoresOtherButtons(t *testing.T) {
	m := testMap(t, 3)
	require.NoError(t, m.PlaceUnit(m.Get(world.Coord{Col: 1, Row: 1}), &world.Unit{ID: "u"}))
	c := New(combat.NewController(m, combat.DefaultConfig()), nil)

	for _, b := range []int{ButtonMiddle, ButtonRight} {
		res, err := c.HandleMouseDown(pointer(m, 1, 1, b))
		assert.NoError(t, err)
		assert.Nil(t, res)
		assert.Equal(t, combat.StateIdle, c.Combat.State())
	}
}

func TestControls_HandleKey(t *testing.T) {
	m := testMap(t, 3)
	c := New(combat.NewController(m, combat.DefaultConfig()), nil)

	quit := false
	c.OnQuit = func() { quit = true }

	c.HandleKey("Enter")
	assert.True(t, c.DayNight.Night)
	assert.True(t, c.DayNight.Animating)

	c.HandleKey("Enter") // ignored mid-transition
	assert.True(t, c.DayNight.Night)

	c.HandleKey("a")
	assert.False(t, quit)

	c.HandleKey("Escape")
	assert.True(t, quit)
}

func TestControls_SetMapUpdatesPicker(t *testing.T) {
	first := testMap(t, 3)
	c := New(combat.NewController(first, combat.DefaultConfig()), nil)

	second := testMap(t, 6)
	c.SetMap(second)
	assert.Same(t, second, c.Combat.Map)

	tile := second.Get(world.Coord{Col: 5, Row: 5})
	x, _, z := second.Placement(tile)
	assert.Same(t, tile, c.Picker.Pick(PointerEvent{X: x, Y: z}))
}
