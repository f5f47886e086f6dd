package config

import (
	_ "embed"

	"github.com/vovakirdan/memory-garden/internal/garden"
)

//go:embed defaults/garden.yaml
var defaultGardenYAML []byte

// DefaultGardenConfig returns the built-in configuration.
func DefaultGardenConfig() GardenConfig {
	cfg := GardenConfig{
		Rules: RulesConfig{
			MaxLevel:   3,
			HintBudget: 3,
			MaxStars:   3,
		},
		Pattern: PatternConfig{
			Base:         2,
			LevelDivisor: 2,
			Cap:          garden.BoardCells,
		},
		Timing: TimingConfig{
			RevealSeconds:  3,
			FeedbackMillis: 2000,
			CaptionWPM:     160,
		},
		Presentation: PresentationConfig{
			TextSize:      1,
			VoiceGuidance: true,
			Audio:         true,
			Volume:        0.7,
		},
	}

	for _, f := range garden.DefaultFlowers {
		cfg.Flowers = append(cfg.Flowers, FlowerConfig{ID: f.ID, Name: f.Name})
	}
	for _, st := range garden.DefaultStories {
		cfg.Stories = append(cfg.Stories, StoryConfig{
			ID:          int(st.ID),
			Title:       st.Title,
			UnlockLevel: st.UnlockLevel,
			Paragraphs:  append([]string(nil), st.Paragraphs...),
		})
	}
	return cfg
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGardenYAML
}
