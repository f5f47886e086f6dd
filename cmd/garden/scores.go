package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memory-garden/internal/platform/tui"
	"github.com/vovakirdan/memory-garden/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresRun   string
	flagScoresTUI   bool
	flagScoresUser  string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the hall of fame",
	Long: `Display the best finished runs, ordered by stars.

Examples:
  garden scores
  garden scores --limit 20
  garden scores --player ana
  garden scores --run <run-id>
  garden scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show the level breakdown of one run")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "interactive", false, "Browse the hall of fame in a table")
	scoresCmd.Flags().StringVar(&flagScoresUser, "player", "", "Show this player's best star total")
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStore()
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHallOfFame(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running hall of fame: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagScoresRun != "" {
		printRun(store, flagScoresRun)
		return
	}

	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Hall of Fame - Memory Garden")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'garden play' and clear a level to get on the board!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-5s  %-6s  %-4s  %-16s  %s\n", "Rank", "Player", "Stars", "Levels", "Done", "Date", "Run")
	fmt.Printf("  %-4s  %-16s  %-5s  %-6s  %-4s  %-16s  %s\n", "----", "------", "-----", "------", "----", "----", "---")

	for i, r := range runs {
		done := "no"
		if r.Completed {
			done = "yes"
		}
		fmt.Printf("  %-4d  %-16s  %-5d  %-6d  %-4s  %-16s  %s\n",
			i+1, r.Player, r.Stars, r.LevelsCleared, done, r.CreatedAt.Format("2006-01-02 15:04"), r.ID)
	}

	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Runs: %d  Completed: %d  Best: %d stars  Average: %.1f stars\n",
			stats.Runs, stats.CompletedRuns, stats.BestStars, stats.AvgStars)
	}
	if flagScoresUser != "" {
		if best, err := store.BestStars(flagScoresUser); err == nil {
			fmt.Printf("Best for %s: %d stars\n", flagScoresUser, best)
		}
	}
}

// printRun prints the level clears of one run.
func printRun(store *storage.Store, runID string) {
	levels, err := store.RunLevels(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if len(levels) == 0 {
		fmt.Printf("No level clears recorded for run %s.\n", runID)
		return
	}

	fmt.Printf("Run %s\n", runID)
	fmt.Println()
	fmt.Printf("  %-5s  %-5s  %-8s  %s\n", "Level", "Stars", "Attempts", "Hints")
	fmt.Printf("  %-5s  %-5s  %-8s  %s\n", "-----", "-----", "--------", "-----")
	for _, l := range levels {
		fmt.Printf("  %-5d  %-5d  %-8d  %d\n", l.Level, l.Stars, l.Attempts, l.HintsUsed)
	}
}
