package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talgya/hex-tactics/internal/combat"
	"github.com/talgya/hex-tactics/internal/pathfind"
	"github.com/talgya/hex-tactics/internal/world"
)

var pathCmd = &cobra.Command{
	Use:   "path FROM TO",
	Short: "Show the cheapest path between two tiles, e.g. path 2,3 9,7",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseCoord(args[0])
		if err != nil {
			return err
		}
		to, err := parseCoord(args[1])
		if err != nil {
			return err
		}

		gc, err := genConfig()
		if err != nil {
			return err
		}
		m, err := world.Generate(gc)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		origin, dest := m.Get(from), m.Get(to)
		if origin == nil || dest == nil {
			return fmt.Errorf("both tiles must exist on the map (seed %d)", m.Seed)
		}

		divisor, _ := cmd.Flags().GetFloat64("divisor")
		budget, _ := cmd.Flags().GetFloat64("budget")

		reach := pathfind.Reachables(m, origin, budget, divisor)
		path := pathfind.FindPath(m, origin, dest, divisor)
		for _, t := range path {
			m.SetStatus(t, world.StatusPath)
		}
		if len(path) > 0 {
			m.SetStatus(dest, world.StatusTarget)
		}

		out := cmd.OutOrStdout()
		renderMap(out, m)
		fmt.Fprintf(out, "\nseed %d: %d tiles reachable from %s within %.1f\n", m.Seed, len(reach), args[0], budget)
		if len(path) == 0 {
			fmt.Fprintf(out, "no path from %s to %s\n", args[0], args[1])
			return nil
		}
		steps := make([]string, len(path))
		for i, t := range path {
			steps[i] = fmt.Sprintf("%d,%d", t.Coord.Col, t.Coord.Row)
		}
		fmt.Fprintf(out, "path (cost %.2f): %s\n", pathfind.PathCost(path, divisor), strings.Join(steps, " -> "))
		return nil
	},
}

func init() {
	def := combat.DefaultConfig()
	pathCmd.Flags().Float64("divisor", def.TerrainDivisor, "difficult terrain costs 1/divisor per step")
	pathCmd.Flags().Float64("budget", float64(def.Movement), "movement budget for the reachable count")
}

func parseCoord(s string) (world.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return world.Coord{}, fmt.Errorf("coordinate %q: want COL,ROW", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return world.Coord{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return world.Coord{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	return world.Coord{Col: col, Row: row}, nil
}
