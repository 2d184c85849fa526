package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/hex-tactics/internal/controls"
	"github.com/talgya/hex-tactics/internal/game"
	"github.com/talgya/hex-tactics/internal/world"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play a scripted session: every unit marches on the nearest enemy",
	RunE: func(cmd *cobra.Command, args []string) error {
		gc, err := genConfig()
		if err != nil {
			return err
		}
		sc := game.DefaultConfig()
		sc.Gen = gc

		s, err := game.NewSession(sc, seedClient(), nil)
		if err != nil {
			return err
		}

		turns, _ := cmd.Flags().GetInt("turns")
		out := cmd.OutOrStdout()
		renderMap(out, s.Map)
		fmt.Fprintln(out)

		for turn := 0; turn < turns && !s.Quit; turn++ {
			team := s.Controls.Combat.Turn()
			if s.Map.UnitsOfTeam(team) == 0 {
				fmt.Fprintf(out, "team %d has no units left\n", team)
				s.Controls.HandleKey("Escape")
				break
			}

			// Nightfall every ten turns.
			if turn > 0 && turn%10 == 0 {
				s.Controls.HandleKey("Enter")
			}
			s.Controls.DayNight.Advance(time.Second)

			if !playTurn(out, s, team) {
				fmt.Fprintf(out, "turn %d: team %d cannot move\n", turn+1, team)
				s.Controls.Combat.EndTurn()
				continue
			}
		}

		fmt.Fprintln(out)
		renderMap(out, s.Map)
		for team := 0; team < s.Map.Teams; team++ {
			fmt.Fprintf(out, "team %d: %d units\n", team, s.Map.UnitsOfTeam(world.Team(team)))
		}
		return nil
	},
}

func init() {
	demoCmd.Flags().Int("turns", 20, "number of turns to play")
}

// playTurn moves one unit of team toward the closest enemy. Returns false if
// no unit of the team could move.
func playTurn(out io.Writer, s *game.Session, team world.Team) bool {
	for _, t := range s.Map.Tiles() {
		if t.Unit == nil || t.Unit.Team != team {
			continue
		}
		if _, err := s.Controls.HandleMouseDown(pointerAt(s.Map, t)); err != nil {
			return false
		}

		target := closestToEnemy(s.Map, team)
		if target == nil {
			s.Controls.Combat.Cancel()
			continue
		}
		s.Controls.HandlePointerMove(pointerAt(s.Map, target))
		res, err := s.Controls.HandleMouseDown(pointerAt(s.Map, target))
		if err != nil || res == nil {
			s.Controls.Combat.Cancel()
			continue
		}
		fmt.Fprintf(out, "%s (team %d) -> %d,%d in %d steps, captured %d\n",
			res.Unit.Name, res.Unit.Team, res.To.Coord.Col, res.To.Coord.Row, len(res.Path), len(res.Captured))
		return true
	}
	return false
}

// closestToEnemy picks the reachable tile nearest to any enemy unit.
func closestToEnemy(m *world.Map, team world.Team) *world.Tile {
	var best *world.Tile
	bestDist := math.Inf(1)
	for _, r := range m.Tiles() {
		if r.Status != world.StatusReachable {
			continue
		}
		rx, _, rz := m.Placement(r)
		for _, e := range m.Tiles() {
			if e.Unit == nil || e.Unit.Team == team {
				continue
			}
			ex, _, ez := m.Placement(e)
			if d := math.Hypot(rx-ex, rz-ez); d < bestDist {
				bestDist = d
				best = r
			}
		}
	}
	return best
}

func pointerAt(m *world.Map, t *world.Tile) controls.PointerEvent {
	x, _, z := m.Placement(t)
	return controls.PointerEvent{X: x, Y: z, Button: controls.ButtonLeft}
}
