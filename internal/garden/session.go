package garden

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Phase is the progression state of a session.
type Phase int

const (
	// PhaseShowingTarget: the target pattern is on display; input is closed.
	PhaseShowingTarget Phase = iota
	// PhaseAwaitingInput: the target is hidden and the player places flowers.
	PhaseAwaitingInput
	// PhaseLevelComplete: the attempt matched; waiting for Advance or Replay.
	PhaseLevelComplete
	// PhaseGameComplete: the final level was cleared. Terminal.
	PhaseGameComplete
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseShowingTarget:
		return "showing_target"
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseGameComplete:
		return "game_complete"
	default:
		return "unknown"
	}
}

// Rules are the session tunables.
type Rules struct {
	MaxLevel   int
	HintBudget int
	MaxStars   int
	Pattern    SizeFormula
}

// DefaultRules returns 3 levels, 3 hints per level, up to 3 stars per level.
func DefaultRules() Rules {
	return Rules{
		MaxLevel:   3,
		HintBudget: 3,
		MaxStars:   3,
		Pattern:    DefaultSizeFormula(),
	}
}

// Options configure a new Session. Zero values fall back to defaults.
type Options struct {
	Rules      Rules
	Catalog    *Catalog
	Stories    []Story
	Seed       int64
	Rand       Rand // overrides Seed when set
	StartLevel int
	Logger     *log.Logger
}

// LevelClear records how a level was cleared.
type LevelClear struct {
	Level     int
	Stars     int
	Attempts  int
	HintsUsed int
}

// Outcome is the result of a placement.
// Evaluated is false while the ledger is still filling up.
type Outcome struct {
	Evaluation
	Evaluated   bool
	Level       int
	Attempt     Pattern // the evaluated attempt, kept for highlighting
	StarsEarned int
	Unlocked    []StoryID // stories newly unlocked by this success
	Message     string
	FinalLevel  bool
	Attempts    int
	HintsUsed   int
}

// Session is one play session. The platform layer owns a single instance
// and drives it only through its methods.
type Session struct {
	rules   Rules
	catalog *Catalog
	stories []Story
	gen     *Generator
	logger  *log.Logger

	level     int
	stars     int
	hints     int
	phase     Phase
	target    Pattern
	ledger    Ledger
	unlocked  StorySet
	attempts  int
	hintsUsed int
	history   []LevelClear
}

// NewSession creates a session and starts its first level.
func NewSession(opts Options) (*Session, error) {
	rules := opts.Rules
	if rules.MaxLevel <= 0 {
		rules = DefaultRules()
	}
	if rules.MaxStars <= 0 {
		rules.MaxStars = 3
	}
	if rules.HintBudget < 0 {
		return nil, fmt.Errorf("garden: negative hint budget %d", rules.HintBudget)
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	stories := opts.Stories
	if stories == nil {
		stories = DefaultStories
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	start := opts.StartLevel
	if start == 0 {
		start = 1
	}
	if start < 1 || start > rules.MaxLevel {
		return nil, fmt.Errorf("%w: start level %d (max %d)", ErrLevelOutOfRange, start, rules.MaxLevel)
	}

	s := &Session{
		rules:    rules,
		catalog:  catalog,
		stories:  stories,
		gen:      NewGeneratorWithRand(catalog, rules.Pattern, rng),
		logger:   logger,
		level:    start,
		unlocked: NewStorySet(InitialStories(stories)...),
	}
	s.startLevel(start)
	return s, nil
}

// StartLevel begins level: new target, full hint budget, empty ledger.
// Replaying the current level is allowed; going back or past MaxLevel is not.
func (s *Session) StartLevel(level int) error {
	if s.phase == PhaseGameComplete {
		return ErrGameComplete
	}
	if level < s.level || level > s.rules.MaxLevel {
		return fmt.Errorf("%w: %d (current %d, max %d)", ErrLevelOutOfRange, level, s.level, s.rules.MaxLevel)
	}
	s.startLevel(level)
	return nil
}

func (s *Session) startLevel(level int) {
	s.level = level
	s.hints = s.rules.HintBudget
	s.target = s.gen.Generate(level)
	s.ledger.Clear()
	s.attempts = 0
	s.hintsUsed = 0
	s.phase = PhaseShowingTarget

	s.logger.Debug("level started", "level", level, "size", len(s.target))
}

// HideTarget ends the memorize phase and opens input.
func (s *Session) HideTarget() error {
	if s.phase != PhaseShowingTarget {
		return fmt.Errorf("%w: hide target in %s", ErrWrongPhase, s.phase)
	}
	s.phase = PhaseAwaitingInput
	return nil
}

// RequestHint spends one hint and redisplays the target, emptying the board.
// With no hints left it returns ErrNoHintsRemaining and changes nothing.
func (s *Session) RequestHint() error {
	if s.phase != PhaseAwaitingInput {
		return fmt.Errorf("%w: hint in %s", ErrWrongPhase, s.phase)
	}
	if s.hints <= 0 {
		return ErrNoHintsRemaining
	}
	s.hints--
	s.hintsUsed++
	s.ledger.Clear()
	s.phase = PhaseShowingTarget

	s.logger.Debug("hint used", "level", s.level, "remaining", s.hints)
	return nil
}

// PlaceFlower records a placement. When the ledger reaches the target size
// the attempt is evaluated: a match completes the level, anything else
// clears the ledger for a retry against the same target.
func (s *Session) PlaceFlower(pos Position, flower string) (Outcome, error) {
	if s.phase != PhaseAwaitingInput {
		return Outcome{}, fmt.Errorf("%w: place in %s", ErrWrongPhase, s.phase)
	}
	if !s.catalog.Has(flower) {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownFlower, flower)
	}
	if err := s.ledger.Record(pos, flower); err != nil {
		return Outcome{}, err
	}
	if !s.ledger.IsFull(len(s.target)) {
		return Outcome{Level: s.level}, nil
	}
	return s.evaluate(), nil
}

func (s *Session) evaluate() Outcome {
	attempt := s.ledger.Entries()
	s.attempts++

	out := Outcome{
		Evaluation: Evaluate(s.target, attempt),
		Evaluated:  true,
		Level:      s.level,
		Attempt:    attempt,
		Attempts:   s.attempts,
		HintsUsed:  s.hintsUsed,
	}

	if !out.Matched {
		s.ledger.Clear()
		s.logger.Debug("attempt rejected", "level", s.level, "mismatches", len(out.Mismatches))
		return out
	}

	out.StarsEarned = StarsEarned(s.hints, s.rules.MaxStars)
	s.stars += out.StarsEarned

	effect := UnlockFor(s.level, s.rules.MaxLevel, s.stories)
	out.Unlocked = s.unlock(effect)
	out.Message = effect.Message
	out.FinalLevel = s.level >= s.rules.MaxLevel

	s.history = append(s.history, LevelClear{
		Level:     s.level,
		Stars:     out.StarsEarned,
		Attempts:  s.attempts,
		HintsUsed: s.hintsUsed,
	})
	s.phase = PhaseLevelComplete

	s.logger.Debug("level cleared",
		"level", s.level,
		"stars", out.StarsEarned,
		"unlocked", len(out.Unlocked),
	)
	return out
}

// unlock applies an effect and returns the newly unlocked IDs.
func (s *Session) unlock(effect UnlockEffect) []StoryID {
	var added []StoryID
	for _, id := range effect.Unlock {
		if s.unlocked.Add(id) {
			added = append(added, id)
		}
	}
	return added
}

// UndoLastMove removes the most recent placement.
func (s *Session) UndoLastMove() (PatternEntry, error) {
	if s.phase != PhaseAwaitingInput {
		return PatternEntry{}, fmt.Errorf("%w: undo in %s", ErrWrongPhase, s.phase)
	}
	return s.ledger.Undo()
}

// Advance leaves a completed level. It starts the next level, or enters
// PhaseGameComplete and reports true after the final one.
func (s *Session) Advance() (bool, error) {
	if s.phase != PhaseLevelComplete {
		return false, fmt.Errorf("%w: advance in %s", ErrWrongPhase, s.phase)
	}

	s.level++
	if s.level > s.rules.MaxLevel {
		s.unlock(UnlockFor(s.rules.MaxLevel, s.rules.MaxLevel, s.stories))
		s.phase = PhaseGameComplete
		s.ledger.Clear()
		s.logger.Debug("game complete", "stars", s.stars)
		return true, nil
	}

	s.startLevel(s.level)
	return false, nil
}

// Replay restarts the level just completed with a fresh pattern.
func (s *Session) Replay() error {
	if s.phase != PhaseLevelComplete {
		return fmt.Errorf("%w: replay in %s", ErrWrongPhase, s.phase)
	}
	s.startLevel(s.level)
	return nil
}

// StarsEarned converts the hints left at success into stars, clamped to
// [0, maxStars].
func StarsEarned(hintsRemaining, maxStars int) int {
	if hintsRemaining < 0 {
		return 0
	}
	if hintsRemaining > maxStars {
		return maxStars
	}
	return hintsRemaining
}

// Level returns the current level. After the final level it is MaxLevel+1.
func (s *Session) Level() int { return s.level }

// Stars returns the stars accumulated this session.
func (s *Session) Stars() int { return s.stars }

// HintsRemaining returns the hints left on the current level.
func (s *Session) HintsRemaining() int { return s.hints }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Rules returns the session rules.
func (s *Session) Rules() Rules { return s.rules }

// Catalog returns the flower catalog.
func (s *Session) Catalog() *Catalog { return s.catalog }

// Stories returns the storybook.
func (s *Session) Stories() []Story { return s.stories }

// Target returns a copy of the current target pattern.
func (s *Session) Target() Pattern { return s.target.Clone() }

// Placed returns a copy of the player's current placements.
func (s *Session) Placed() Pattern { return s.ledger.Entries() }

// IsUnlocked reports whether a story is unlocked.
func (s *Session) IsUnlocked(id StoryID) bool { return s.unlocked.Has(id) }

// Unlocked returns the unlocked story IDs in ascending order.
func (s *Session) Unlocked() []StoryID { return s.unlocked.List() }

// History returns the levels cleared so far, in order.
func (s *Session) History() []LevelClear {
	out := make([]LevelClear, len(s.history))
	copy(out, s.history)
	return out
}

// IsComplete reports whether the session reached PhaseGameComplete.
func (s *Session) IsComplete() bool { return s.phase == PhaseGameComplete }
