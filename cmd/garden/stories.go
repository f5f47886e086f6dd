package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memory-garden/internal/garden"
	"github.com/vovakirdan/memory-garden/internal/narration"
)

var flagReadStory int

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Show the storybook",
	Long: `Lists the stories and the level that unlocks each one. With --read, the
story is narrated line by line.

Examples:
  garden stories
  garden stories --read 2`,
	Args: cobra.NoArgs,
	Run:  runStories,
}

func init() {
	storiesCmd.Flags().IntVar(&flagReadStory, "read", 0, "Narrate the story with this ID")
}

func runStories(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	stories := cfg.EngineStories()

	if flagReadStory != 0 {
		for _, st := range stories {
			if int(st.ID) == flagReadStory {
				readStory(st, cfg.Timing.CaptionWPM)
				return
			}
		}
		fmt.Fprintf(os.Stderr, "Error: unknown story %d\n", flagReadStory)
		fmt.Fprintln(os.Stderr, "Run 'garden stories' to see the storybook.")
		os.Exit(1)
	}

	fmt.Println("Storybook:")
	fmt.Println()
	fmt.Printf("  %-2s  %-22s  %s\n", "ID", "Title", "Unlocked by")
	fmt.Printf("  %-2s  %-22s  %s\n", "--", "-----", "-----------")

	for _, st := range stories {
		unlock := "start"
		if st.UnlockLevel > 0 {
			unlock = fmt.Sprintf("level %d", st.UnlockLevel)
		}
		fmt.Printf("  %-2d  %-22s  %s\n", st.ID, st.Title, unlock)
	}

	fmt.Println()
	fmt.Println("Run 'garden stories --read <id>' to hear a story.")
}

// readStory narrates a story through the narration queue. On a terminal the
// lines are paced like captions; otherwise they are logged.
func readStory(st garden.Story, wpm int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(os.Stderr, "garden")

	var speaker narration.Speaker
	if term.IsTerminal(int(os.Stdout.Fd())) {
		speaker = narration.NewCaptionSpeaker(func(text string) {
			fmt.Println(text)
			fmt.Println()
		}, wpm)
	} else {
		speaker = narration.NewLogSpeaker(logger)
	}

	queue := narration.NewQueue(speaker, logger)
	go queue.Run(ctx)

	queue.Enqueue(st.Title)
	for _, p := range st.Paragraphs {
		queue.Enqueue(p)
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			queue.Cancel()
			return
		case <-ticker.C:
			if queue.Pending() == 0 && !queue.Speaking() {
				return
			}
		}
	}
}
