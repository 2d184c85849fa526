// Package controls routes pointer and keyboard input to the combat controller
// and the scene-lighting state.
package controls

import (
	"log/slog"

	"github.com/talgya/hex-tactics/internal/combat"
	"github.com/talgya/hex-tactics/internal/world"
)

// Pointer buttons.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// PointerEvent is a pointer position handed over by the input layer.
type PointerEvent struct {
	X, Y   float64
	Button int
}

// Picker resolves the tile under a pointer, or nil. A renderer implements it
// with a ray cast against its scene.
type Picker interface {
	Pick(ev PointerEvent) *world.Tile
}

// PlanarPicker treats event coordinates as ground-plane positions.
type PlanarPicker struct {
	Map *world.Map
}

// Pick returns the tile whose centre is closest to the event position.
func (p PlanarPicker) Pick(ev PointerEvent) *world.Tile {
	if p.Map == nil {
		return nil
	}
	c := world.PositionToTile(ev.X, ev.Y, p.Map.Shape, p.Map.Size)
	return p.Map.Get(c)
}

// Controls wires input to the session's controllers.
type Controls struct {
	Combat   *combat.Controller
	DayNight *DayNight
	Picker   Picker

	// OnQuit is invoked when the player asks to leave the game.
	OnQuit func()
}

// New creates input controls for a combat controller. A nil picker falls
// back to a PlanarPicker on the controller's map.
func New(c *combat.Controller, picker Picker) *Controls {
	if picker == nil {
		picker = PlanarPicker{Map: c.Map}
	}
	return &Controls{
		Combat:   c,
		DayNight: NewDayNight(),
		Picker:   picker,
	}
}

// SetMap points the controls at a new map.
func (c *Controls) SetMap(m *world.Map) {
	c.Combat.SetMap(m)
	if pp, ok := c.Picker.(PlanarPicker); ok {
		pp.Map = m
		c.Picker = pp
	}
}

// HandlePointerMove updates hover and path preview.
func (c *Controls) HandlePointerMove(ev PointerEvent) {
	c.Combat.HandlePointerMove(c.Picker.Pick(ev))
}

// HandleMouseDown forwards left clicks to the combat controller.
func (c *Controls) HandleMouseDown(ev PointerEvent) (*combat.MoveResult, error) {
	if ev.Button != ButtonLeft {
		return nil, nil
	}
	return c.Combat.HandleClick(c.Picker.Pick(ev))
}

// HandleKey reacts to keyboard shortcuts: Escape quits, Enter toggles day and night.
func (c *Controls) HandleKey(key string) {
	switch key {
	case "Escape":
		slog.Info("quit requested")
		if c.OnQuit != nil {
			c.OnQuit()
		}
	case "Enter":
		if c.DayNight.Toggle() {
			slog.Debug("day/night transition started", "night", c.DayNight.Night)
		}
	}
}
