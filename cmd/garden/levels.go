package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-garden/internal/garden"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show pattern sizes per level",
	Long: `Shows how many flowers each level asks you to remember, and which story
clearing it unlocks. Respects --config.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	rules := cfg.EngineRules()
	stories := cfg.EngineStories()

	fmt.Printf("Memory Garden - %d levels, %d hints per level\n", rules.MaxLevel, rules.HintBudget)
	fmt.Println()

	fmt.Printf("  %-5s  %-7s  %s\n", "Level", "Flowers", "Unlocks")
	fmt.Printf("  %-5s  %-7s  %s\n", "-----", "-------", "-------")

	for level := 1; level <= rules.MaxLevel; level++ {
		effect := garden.UnlockFor(level, rules.MaxLevel, stories)
		unlocks := "-"
		switch {
		case effect.All:
			unlocks = "all stories"
		case len(effect.Unlock) > 0:
			unlocks = storyTitles(stories, effect.Unlock)
		}
		fmt.Printf("  %-5d  %-7d  %s\n", level, rules.Pattern.Size(level), unlocks)
	}

	fmt.Println()
	fmt.Println("Run 'garden play' to start planting.")
}

// storyTitles joins the titles of the given stories.
func storyTitles(stories []garden.Story, ids []garden.StoryID) string {
	out := ""
	for _, id := range ids {
		for _, st := range stories {
			if st.ID != id {
				continue
			}
			if out != "" {
				out += ", "
			}
			out += st.Title
		}
	}
	return out
}
