package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/hex-tactics/internal/persistence"
	"github.com/talgya/hex-tactics/internal/world"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated maps",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := persistence.Open(cfg.GetString("db"))
		if err != nil {
			return err
		}
		defer db.Close()

		out := cmd.OutOrStdout()

		if show, _ := cmd.Flags().GetInt64("show"); show != 0 {
			rec, err := db.MapBySeed(show)
			if err != nil {
				return err
			}
			gc, err := rec.GenConfig()
			if err != nil {
				return err
			}
			m, err := world.Generate(gc)
			if err != nil {
				return fmt.Errorf("regenerate: %w", err)
			}
			renderMap(out, m)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := db.RecentMaps(limit)
		if err != nil {
			return fmt.Errorf("list maps: %w", err)
		}

		if len(recs) == 0 {
			fmt.Fprintln(out, "no maps recorded")
			return nil
		}
		if last, err := db.LastSeed(); err == nil {
			fmt.Fprintf(out, "last seed: %d\n", last)
		}
		for _, r := range recs {
			fmt.Fprintf(out, "%4d  seed %-20d %-6s size %-3d sea %-2d max %-3d %s tiles, %s obstacles  %s\n",
				r.ID, r.Seed, r.Shape, r.Size, r.SeaLevel, r.MaxHeight,
				humanize.Comma(int64(r.Tiles)), humanize.Comma(int64(r.Obstacles)),
				humanize.Time(time.Unix(r.CreatedAt, 0)),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of maps to list")
	historyCmd.Flags().Int64("show", 0, "regenerate and print the logged map with this seed")
}
