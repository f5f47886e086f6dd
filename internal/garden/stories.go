package garden

import (
	"fmt"
	"sort"
)

// StoryID identifies a story in the storybook (1-based).
type StoryID int

// Story is a narrated storybook entry.
// UnlockLevel is the level whose completion unlocks it; 0 means unlocked
// from the start.
type Story struct {
	ID          StoryID
	Title       string
	UnlockLevel int
	Paragraphs  []string
}

// DefaultStories is the storybook of the original garden.
var DefaultStories = []Story{
	{
		ID:          1,
		Title:       "The Garden Begins",
		UnlockLevel: 0,
		Paragraphs: []string{
			"Once upon a time, there was a beautiful garden waiting for someone special to bring it to life.",
			"That special person was you!",
			"With your memory skills and love for nature, you started planting flowers one by one.",
			"Each flower you planted correctly made the garden more beautiful and vibrant.",
			"The garden was grateful for your help and promised to reward you with magical stories as you continued to help it grow.",
		},
	},
	{
		ID:          2,
		Title:       "The Magical Flower",
		UnlockLevel: 2,
		Paragraphs: []string{
			"As you continued to tend to your garden, something magical happened!",
			"One morning, you noticed a flower unlike any you had seen before.",
			"It had petals that shimmered with all the colors of the rainbow.",
			"When you approached it, the flower began to glow and spoke to you!",
			"\"Thank you for caring for this garden,\" it said. \"Your memory and dedication have brought magic back to this place.\"",
			"The magical flower promised to be your friend and help you on your gardening journey.",
		},
	},
	{
		ID:          3,
		Title:       "Garden Friends",
		UnlockLevel: 3,
		Paragraphs: []string{
			"Your garden was now flourishing with beautiful flowers of all kinds.",
			"One day, you noticed that small creatures had begun to visit your garden.",
			"Butterflies danced among the flowers, bees buzzed happily collecting pollen, and birds sang in the trees.",
			"They all came to thank you for creating such a wonderful home for them.",
			"\"Your memory garden has become a sanctuary for all of us,\" they said.",
			"From that day on, you were never alone in your garden, surrounded by friends who appreciated your hard work.",
		},
	},
}

// StorySet is a monotonic set of unlocked stories.
type StorySet struct {
	ids map[StoryID]struct{}
}

// NewStorySet returns a set holding ids.
func NewStorySet(ids ...StoryID) StorySet {
	s := StorySet{ids: make(map[StoryID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Add unlocks id and reports whether it was newly unlocked.
// Adding an already unlocked story is a no-op.
func (s *StorySet) Add(id StoryID) bool {
	if s.ids == nil {
		s.ids = make(map[StoryID]struct{})
	}
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Has reports whether id is unlocked.
func (s StorySet) Has(id StoryID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of unlocked stories.
func (s StorySet) Len() int {
	return len(s.ids)
}

// List returns the unlocked IDs in ascending order.
func (s StorySet) List() []StoryID {
	out := make([]StoryID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UnlockEffect is what completing a level does to the storybook.
type UnlockEffect struct {
	Unlock  []StoryID // stories the level grants, in story order
	All     bool      // the whole storybook is granted
	Message string
}

// UnlockFor maps a completed level to its unlock effect.
//
// The final level grants every story. Other levels grant the stories whose
// UnlockLevel equals the completed level; a level that grants nothing
// points at the next level that does.
func UnlockFor(completed, maxLevel int, stories []Story) UnlockEffect {
	if completed >= maxLevel {
		ids := make([]StoryID, 0, len(stories))
		for _, st := range stories {
			ids = append(ids, st.ID)
		}
		return UnlockEffect{
			Unlock:  ids,
			All:     true,
			Message: "You've unlocked all stories! Congratulations on completing the game!",
		}
	}

	var effect UnlockEffect
	var titles []string
	for _, st := range stories {
		if st.UnlockLevel == completed {
			effect.Unlock = append(effect.Unlock, st.ID)
			titles = append(titles, st.Title)
		}
	}

	switch len(titles) {
	case 0:
		effect.Message = fmt.Sprintf("Complete level %d to unlock a new story!",
			nextUnlockLevel(completed, maxLevel, stories))
	case 1:
		effect.Message = fmt.Sprintf("You've unlocked '%s' story!", titles[0])
	default:
		effect.Message = fmt.Sprintf("You've unlocked %d new stories!", len(titles))
	}
	return effect
}

// nextUnlockLevel returns the lowest level above completed that unlocks
// something. The final level always does.
func nextUnlockLevel(completed, maxLevel int, stories []Story) int {
	next := maxLevel
	for _, st := range stories {
		if st.UnlockLevel > completed && st.UnlockLevel < next {
			next = st.UnlockLevel
		}
	}
	return next
}

// InitialStories returns the IDs unlocked before any level is played.
func InitialStories(stories []Story) []StoryID {
	var ids []StoryID
	for _, st := range stories {
		if st.UnlockLevel <= 0 {
			ids = append(ids, st.ID)
		}
	}
	return ids
}
