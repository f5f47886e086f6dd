package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memory-garden/internal/audio"
	"github.com/vovakirdan/memory-garden/internal/platform/tui"
)

var (
	flagPlayer     string
	flagStartLevel int
	flagMute       bool
	flagLogFile    string
	flagSkipTitle  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Plant a garden in this terminal",
	Long: `Start a Memory Garden session.

Each level shows a pattern of flowers for a few seconds, then hides it.
Plant the same flowers in the same spots to clear the level. Every hint
you keep is a star.

Controls:
  Arrows/WASD  - Move around the garden
  1-9, Tab     - Pick a flower
  Enter/Space  - Plant
  U            - Undo last flower
  H            - Hint (show the pattern again)
  N / R        - Next level / replay level
  B            - Storybook
  C V M T X    - Contrast, voice guide, sound, text size, simple mode
  Q/Ctrl+C     - Quit

Progress is not kept between sessions; finished runs go to the hall of fame.

Examples:
  garden play
  garden play --player ana
  garden play --start-level 2 --seed 42
  garden play --config ./my-garden.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name for the hall of fame (default: $USER)")
	playCmd.Flags().IntVar(&flagStartLevel, "start-level", 1, "Level to start on")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound cues")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: no logs)")
	playCmd.Flags().BoolVar(&flagSkipTitle, "skip-title", false, "Start on the board instead of the title screen")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The board owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log directory: %v\n", err)
			os.Exit(1)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "garden")

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	if flagMute {
		cfg.Presentation.Audio = false
	}
	sounds := audio.NewSoundManager(cfg.Presentation.Audio, cfg.Presentation.Volume)
	if cfg.Presentation.Audio {
		if err := sounds.Initialize(); err != nil {
			logger.Warn("audio unavailable", "error", err)
		}
	}
	defer sounds.Cleanup()

	opts := tui.Options{
		Config:     cfg,
		Seed:       flagSeed,
		StartLevel: flagStartLevel,
		Player:     player,
		Sounds:     sounds,
		Logger:     logger,
		Width:      width,
		Height:     height,
		SkipTitle:  flagSkipTitle,
	}

	// Continue without storage - the game still works
	store := openStore()
	if store != nil {
		opts.Store = store
	}

	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
