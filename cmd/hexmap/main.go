// Command hexmap generates battle maps, inspects movement on them and plays
// scripted sessions in the terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/talgya/hex-tactics/internal/entropy"
	"github.com/talgya/hex-tactics/internal/world"
)

var cfg = viper.New()

var rootCmd = &cobra.Command{
	Use:   "hexmap",
	Short: "Hex battle map generator",
	Long:  `hexmap generates seeded hex battle maps, computes reachable tiles and paths, and keeps a log of generated seeds.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if cfg.GetBool("verbose") {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	def := world.DefaultGenConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("shape", world.ShapeName(def.Shape), "map shape: box or circle")
	flags.Int("size", def.Size, "box side length or circle radius")
	flags.Int("sea-level", def.SeaLevel, "height subtracted before the sea cut")
	flags.Int("max-height", def.MaxHeight, "maximum tile height")
	flags.Int("min-height", def.MinHeight, "height added before the sea cut")
	flags.String("seed", "", "map seed, numeric or any string (empty = random)")
	flags.Int("workers", def.Workers, "height sampling goroutines")
	flags.String("db", "data/hexmap.db", "map log database path")
	flags.String("random-org-key", "", "random.org API key for fresh seeds")
	flags.BoolP("verbose", "v", false, "debug logging")

	cfg.SetEnvPrefix("HEXMAP")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
	if err := cfg.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("bind flags: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(demoCmd)
}

// genConfig assembles generation parameters from flags and HEXMAP_* variables.
func genConfig() (world.GenConfig, error) {
	shape, ok := world.ParseShape(cfg.GetString("shape"))
	if !ok {
		return world.GenConfig{}, fmt.Errorf("unknown shape %q", cfg.GetString("shape"))
	}
	gc := world.GenConfig{
		Shape:     shape,
		Size:      cfg.GetInt("size"),
		SeaLevel:  cfg.GetInt("sea-level"),
		MaxHeight: cfg.GetInt("max-height"),
		MinHeight: cfg.GetInt("min-height"),
		Seed:      world.SeedFromString(cfg.GetString("seed")),
		Workers:   cfg.GetInt("workers"),
	}
	if gc.Seed == 0 {
		gc.Seed = entropy.Seed(seedClient())
	}
	return gc, nil
}

func seedClient() *entropy.Client {
	client := entropy.NewClient(cfg.GetString("random-org-key"))
	if client == nil {
		slog.Debug("random.org key not set, seeds come from crypto/rand")
	}
	return client
}
