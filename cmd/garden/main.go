// garden is Memory Garden: a pattern-memory game for the terminal.
//
// Usage:
//
//	garden play              - Plant a garden in this terminal
//	garden serve             - Start SSH server for remote play
//	garden levels            - Show pattern sizes per level
//	garden stories           - Show the storybook and read stories aloud
//	garden scores            - Show the hall of fame
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible patterns
//	--db <path>          - Set database path (default: ~/.garden/garden.db)
//	--config <path>      - Use a custom garden.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-garden/internal/config"
	"github.com/vovakirdan/memory-garden/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "garden",
	Short: "Memory Garden - remember the flowers, plant them back",
	Long: `Memory Garden shows a few flowers on a 3x3 garden, hides them, and asks
you to plant them back from memory. Clear levels to earn stars and unlock
stories in the storybook.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  levels   - Show pattern sizes per level
  stories  - Show the storybook
  scores   - View the hall of fame

Examples:
  garden play
  garden play --player ana --seed 7
  garden serve --ssh :2222
  garden stories --read 1
  garden scores`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.garden/garden.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom garden config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(storiesCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads the garden config or exits.
func loadConfig() config.GardenConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates a logger at the --log-level level writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using info\n", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the results database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		return nil
	}
	return store
}
