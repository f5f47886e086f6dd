// Package config provides YAML-based rules, catalog and presentation
// configuration for Memory Garden.
package config

import (
	"fmt"

	"github.com/vovakirdan/memory-garden/internal/garden"
)

// GardenConfig contains all configuration for a garden session.
type GardenConfig struct {
	Rules        RulesConfig        `yaml:"rules"`
	Pattern      PatternConfig      `yaml:"pattern"`
	Timing       TimingConfig       `yaml:"timing"`
	Flowers      []FlowerConfig     `yaml:"flowers"`
	Stories      []StoryConfig      `yaml:"stories"`
	Presentation PresentationConfig `yaml:"presentation"`
}

// RulesConfig defines progression parameters.
type RulesConfig struct {
	MaxLevel   int `yaml:"max_level"`
	HintBudget int `yaml:"hint_budget"`
	MaxStars   int `yaml:"max_stars"`
}

// PatternConfig defines the pattern size formula:
// min(cap, base + level/level_divisor).
type PatternConfig struct {
	Base         int `yaml:"base"`
	LevelDivisor int `yaml:"level_divisor"`
	Cap          int `yaml:"cap"`
}

// TimingConfig defines UI pacing. The engine itself never waits.
type TimingConfig struct {
	RevealSeconds  int `yaml:"reveal_seconds"`  // How long the target stays on screen
	FeedbackMillis int `yaml:"feedback_millis"` // How long wrong placements stay highlighted
	CaptionWPM     int `yaml:"caption_wpm"`     // Narration caption pacing
}

// FlowerConfig is one catalog entry.
type FlowerConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// StoryConfig is one storybook entry.
type StoryConfig struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	UnlockLevel int      `yaml:"unlock_level"` // 0 = unlocked from the start
	Paragraphs  []string `yaml:"paragraphs"`
}

// PresentationConfig holds the accessibility toggles. They only change how
// things are shown or voiced.
type PresentationConfig struct {
	TextSize      int     `yaml:"text_size"` // 1 = normal, 2 = large, 3 = extra large
	HighContrast  bool    `yaml:"high_contrast"`
	VoiceGuidance bool    `yaml:"voice_guidance"`
	Audio         bool    `yaml:"audio"`
	Simplified    bool    `yaml:"simplified"`
	Volume        float64 `yaml:"volume"` // 0.0 - 1.0
}

// Validate checks the config for values the engine cannot run with.
func (c GardenConfig) Validate() error {
	if c.Rules.MaxLevel < 1 {
		return fmt.Errorf("config: rules.max_level must be at least 1, got %d", c.Rules.MaxLevel)
	}
	if c.Rules.HintBudget < 0 {
		return fmt.Errorf("config: rules.hint_budget must not be negative, got %d", c.Rules.HintBudget)
	}
	if c.Rules.MaxStars < 1 {
		return fmt.Errorf("config: rules.max_stars must be at least 1, got %d", c.Rules.MaxStars)
	}
	if c.Pattern.Base < 1 {
		return fmt.Errorf("config: pattern.base must be at least 1, got %d", c.Pattern.Base)
	}
	if c.Pattern.LevelDivisor < 1 {
		return fmt.Errorf("config: pattern.level_divisor must be at least 1, got %d", c.Pattern.LevelDivisor)
	}
	if c.Pattern.Cap < 1 || c.Pattern.Cap > garden.BoardCells {
		return fmt.Errorf("config: pattern.cap must be in [1, %d], got %d", garden.BoardCells, c.Pattern.Cap)
	}
	if c.Timing.RevealSeconds < 1 {
		return fmt.Errorf("config: timing.reveal_seconds must be at least 1, got %d", c.Timing.RevealSeconds)
	}
	if c.Presentation.TextSize < 1 || c.Presentation.TextSize > 3 {
		return fmt.Errorf("config: presentation.text_size must be 1, 2 or 3, got %d", c.Presentation.TextSize)
	}
	if c.Presentation.Volume < 0 || c.Presentation.Volume > 1 {
		return fmt.Errorf("config: presentation.volume must be in [0, 1], got %g", c.Presentation.Volume)
	}
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	seen := make(map[int]bool, len(c.Stories))
	for _, st := range c.Stories {
		if st.ID < 1 {
			return fmt.Errorf("config: story id must be positive, got %d", st.ID)
		}
		if seen[st.ID] {
			return fmt.Errorf("config: duplicate story id %d", st.ID)
		}
		seen[st.ID] = true
		if st.UnlockLevel < 0 || st.UnlockLevel > c.Rules.MaxLevel {
			return fmt.Errorf("config: story %d unlock_level %d outside [0, %d]", st.ID, st.UnlockLevel, c.Rules.MaxLevel)
		}
	}
	return nil
}

// Catalog builds the engine flower catalog.
func (c GardenConfig) Catalog() (*garden.Catalog, error) {
	kinds := make([]garden.FlowerKind, len(c.Flowers))
	for i, f := range c.Flowers {
		kinds[i] = garden.FlowerKind{ID: f.ID, Name: f.Name}
	}
	return garden.NewCatalog(kinds)
}

// EngineRules converts the config into engine rules.
func (c GardenConfig) EngineRules() garden.Rules {
	return garden.Rules{
		MaxLevel:   c.Rules.MaxLevel,
		HintBudget: c.Rules.HintBudget,
		MaxStars:   c.Rules.MaxStars,
		Pattern: garden.SizeFormula{
			Base:    c.Pattern.Base,
			Divisor: c.Pattern.LevelDivisor,
			Cap:     c.Pattern.Cap,
		},
	}
}

// EngineStories converts the storybook into engine stories.
func (c GardenConfig) EngineStories() []garden.Story {
	out := make([]garden.Story, len(c.Stories))
	for i, st := range c.Stories {
		out[i] = garden.Story{
			ID:          garden.StoryID(st.ID),
			Title:       st.Title,
			UnlockLevel: st.UnlockLevel,
			Paragraphs:  append([]string(nil), st.Paragraphs...),
		}
	}
	return out
}

// SessionOptions builds engine options for a new session.
func (c GardenConfig) SessionOptions(seed int64, startLevel int) (garden.Options, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return garden.Options{}, fmt.Errorf("config: %w", err)
	}
	return garden.Options{
		Rules:      c.EngineRules(),
		Catalog:    catalog,
		Stories:    c.EngineStories(),
		Seed:       seed,
		StartLevel: startLevel,
	}, nil
}
