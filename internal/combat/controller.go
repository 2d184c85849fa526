// Package combat runs the turn-scoped tile interaction: hovering, selecting a
// unit, previewing a path, committing a move and capturing on arrival.
package combat

import (
	"fmt"
	"log/slog"

	"github.com/talgya/hex-tactics/internal/pathfind"
	"github.com/talgya/hex-tactics/internal/world"
)

// Movement is the default movement budget of a unit, also the capture radius.
const Movement = 3

// State is the interaction state of the current turn.
type State uint8

const (
	StateIdle         State = iota // Nothing selected
	StateUnitSelected              // A friendly unit's reachable tiles are shown
)

// StateName returns a human-readable name for a state.
func StateName(s State) string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUnitSelected:
		return "unit-selected"
	default:
		return "unknown"
	}
}

// Config holds the movement rules.
type Config struct {
	Movement       int     // Budget per move and capture radius
	TerrainDivisor float64 // Difficult terrain costs 1/TerrainDivisor per step
}

// DefaultConfig returns the standard movement rules.
func DefaultConfig() Config {
	return Config{
		Movement:       Movement,
		TerrainDivisor: 0.5,
	}
}

// MoveResult describes a committed move.
type MoveResult struct {
	Unit     *world.Unit
	From     *world.Tile
	To       *world.Tile
	Path     []*world.Tile
	Captured []*world.Unit
}

// Controller is the interaction state machine for one game session.
// All calls are expected on a single goroutine.
type Controller struct {
	Map *world.Map
	cfg Config

	state    State
	turn     world.Team
	selected *world.Tile
	path     []*world.Tile // Current preview path, target last

	// OnMove is called after every committed move.
	OnMove func(res MoveResult)
}

// NewController creates a controller on a map. Team 0 moves first.
func NewController(m *world.Map, cfg Config) *Controller {
	if cfg.Movement <= 0 {
		cfg.Movement = Movement
	}
	return &Controller{Map: m, cfg: cfg}
}

// SetMap switches to a freshly generated map and resets the turn state.
func (c *Controller) SetMap(m *world.Map) {
	c.Map = m
	c.state = StateIdle
	c.turn = 0
	c.selected = nil
	c.path = nil
}

func (c *Controller) State() State { return c.state }

// Turn returns the team allowed to move.
func (c *Controller) Turn() world.Team { return c.turn }

func (c *Controller) Selected() *world.Tile { return c.selected }

// PreviewPath returns the path shown for the current target, target last.
func (c *Controller) PreviewPath() []*world.Tile { return c.path }

// HandlePointerMove updates hover state for the tile under the pointer
// (nil when the pointer is over nothing).
func (c *Controller) HandlePointerMove(hovered *world.Tile) {
	c.Map.ApplyStatus(world.StatusHovered, world.StatusNormal)
	c.Map.ApplyStatus(world.StatusTarget, world.StatusReachable)
	c.cleanPath()

	if hovered == nil || !c.Map.Contains(hovered) {
		return
	}

	switch hovered.Status {
	case world.StatusReachable, world.StatusPath:
		c.Map.SetStatus(hovered, world.StatusTarget)
		c.setPath(hovered)
	case world.StatusSelected:
		// The selected unit keeps its highlight.
	default:
		c.Map.SetStatus(hovered, world.StatusHovered)
	}
}

// HandleClick reacts to a click on t (nil when nothing was under the pointer).
// A non-nil result is returned only when a move was committed.
func (c *Controller) HandleClick(t *world.Tile) (*MoveResult, error) {
	switch c.state {
	case StateIdle:
		if t != nil && c.Map.Contains(t) && t.Unit != nil && t.Unit.Team == c.turn {
			c.selectUnit(t)
		}
		return nil, nil
	case StateUnitSelected:
		if t != nil && t.Status == world.StatusTarget {
			return c.commit(t)
		}
		c.Cancel()
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: controller state %d", world.ErrInvalidState, c.state)
	}
}

// Cancel drops the current selection and its affordances.
func (c *Controller) Cancel() {
	if c.state != StateUnitSelected {
		return
	}
	c.Map.ApplyStatus(world.StatusReachable, world.StatusNormal)
	c.Map.ApplyStatus(world.StatusPath, world.StatusNormal)
	c.Map.ApplyStatus(world.StatusTarget, world.StatusNormal)
	c.Map.ApplyStatus(world.StatusSelected, world.StatusNormal)
	c.reset()
}

// EndTurn passes the turn to the next team.
func (c *Controller) EndTurn() {
	c.Cancel()
	teams := c.Map.Teams
	if teams < 1 {
		teams = 1
	}
	c.turn = world.Team((int(c.turn) + 1) % teams)
	slog.Debug("turn ended", "next_team", c.turn)
}

func (c *Controller) selectUnit(t *world.Tile) {
	c.selected = t
	c.Map.SetStatus(t, world.StatusSelected)

	reach := pathfind.Reachables(c.Map, t, float64(c.cfg.Movement), c.cfg.TerrainDivisor)
	for _, r := range reach {
		c.Map.SetStatus(r, world.StatusReachable)
	}
	c.state = StateUnitSelected
	slog.Debug("unit selected", "unit", t.Unit.Name, "team", t.Unit.Team, "reachable", len(reach))
}

func (c *Controller) commit(dest *world.Tile) (*MoveResult, error) {
	origin := c.selected
	path := c.path
	if len(path) == 0 || path[len(path)-1] != dest {
		path = pathfind.FindPath(c.Map, origin, dest, c.cfg.TerrainDivisor)
	}

	if err := c.Map.MoveUnit(origin, dest); err != nil {
		c.Cancel()
		return nil, fmt.Errorf("commit move: %w", err)
	}
	unit := dest.Unit

	var captured []*world.Unit
	for _, n := range pathfind.Neighbors(c.Map, dest, c.cfg.Movement, true) {
		if n.Unit != nil && n.Unit.Team != unit.Team {
			captured = append(captured, c.Map.RemoveUnit(n))
		}
	}

	c.Map.ClearStatus()
	c.reset()

	res := MoveResult{
		Unit:     unit,
		From:     origin,
		To:       dest,
		Path:     path,
		Captured: captured,
	}
	slog.Info("unit moved",
		"unit", unit.Name,
		"team", unit.Team,
		"from", fmt.Sprintf("%d,%d", origin.Coord.Col, origin.Coord.Row),
		"to", fmt.Sprintf("%d,%d", dest.Coord.Col, dest.Coord.Row),
		"steps", len(path),
		"captured", len(captured),
	)
	if c.OnMove != nil {
		c.OnMove(res)
	}
	c.EndTurn()
	return &res, nil
}

// setPath previews the path to target, marking every tile before it PATH.
func (c *Controller) setPath(target *world.Tile) {
	if c.selected == nil {
		return
	}
	c.path = pathfind.FindPath(c.Map, c.selected, target, c.cfg.TerrainDivisor)
	for _, t := range c.path {
		if t != target {
			c.Map.SetStatus(t, world.StatusPath)
		}
	}
}

func (c *Controller) cleanPath() {
	c.Map.ApplyStatus(world.StatusPath, world.StatusReachable)
	c.path = nil
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.selected = nil
	c.path = nil
}
