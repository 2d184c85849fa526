package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/hex-tactics/internal/persistence"
	"github.com/talgya/hex-tactics/internal/world"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a map, print it and record its seed",
	RunE: func(cmd *cobra.Command, args []string) error {
		gc, err := genConfig()
		if err != nil {
			return err
		}
		m, err := world.Generate(gc)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		out := cmd.OutOrStdout()
		renderMap(out, m)
		fmt.Fprintf(out, "\nseed %d: %s tiles\n", m.Seed, humanize.Comma(int64(m.TileCount())))
		counts := m.TextureCounts()
		for tex := world.TextureLowland; tex <= world.TextureRocky; tex++ {
			fmt.Fprintf(out, "  %-10s %s\n", world.TextureName(tex), humanize.Comma(int64(counts[tex])))
		}

		if noRecord, _ := cmd.Flags().GetBool("no-record"); noRecord {
			return nil
		}
		return recordMap(gc, m)
	},
}

func init() {
	generateCmd.Flags().Bool("no-record", false, "do not write the map to the log")
}

func recordMap(gc world.GenConfig, m *world.Map) error {
	path := cfg.GetString("db")
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.RecordMap(persistence.RecordFor(gc, m)); err != nil {
		return err
	}
	slog.Debug("map log updated", "path", path)
	return nil
}
