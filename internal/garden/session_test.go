package garden

import (
	"errors"
	"reflect"
	"testing"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(Options{Seed: seed})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

// solve places the target pattern and returns the final outcome.
func solve(t *testing.T, s *Session) Outcome {
	t.Helper()
	if s.Phase() == PhaseShowingTarget {
		if err := s.HideTarget(); err != nil {
			t.Fatalf("HideTarget() failed: %v", err)
		}
	}
	var out Outcome
	for _, e := range s.Target() {
		var err error
		out, err = s.PlaceFlower(e.Position, e.Flower)
		if err != nil {
			t.Fatalf("PlaceFlower(%v) failed: %v", e.Position, err)
		}
	}
	return out
}

// wrongFlower returns a catalog flower different from id.
func wrongFlower(s *Session, id string) string {
	for _, k := range s.Catalog().Kinds() {
		if k.ID != id {
			return k.ID
		}
	}
	return ""
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession(t, 1)

	if s.Level() != 1 {
		t.Errorf("Level() = %d, want 1", s.Level())
	}
	if s.HintsRemaining() != 3 {
		t.Errorf("HintsRemaining() = %d, want 3", s.HintsRemaining())
	}
	if s.Phase() != PhaseShowingTarget {
		t.Errorf("Phase() = %v, want %v", s.Phase(), PhaseShowingTarget)
	}
	if !reflect.DeepEqual(s.Unlocked(), []StoryID{1}) {
		t.Errorf("Unlocked() = %v, want [1]", s.Unlocked())
	}
}

func TestNewSessionRejectsBadStartLevel(t *testing.T) {
	if _, err := NewSession(Options{StartLevel: 4}); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("StartLevel 4: err = %v, want ErrLevelOutOfRange", err)
	}
	if _, err := NewSession(Options{StartLevel: -1}); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("StartLevel -1: err = %v, want ErrLevelOutOfRange", err)
	}
}

func TestScenarioExactMatchLevelOne(t *testing.T) {
	s := newTestSession(t, 42)

	if got := len(s.Target()); got != 2 {
		t.Fatalf("level 1 pattern length = %d, want 2", got)
	}

	out := solve(t, s)
	if !out.Evaluated || !out.Matched {
		t.Fatalf("outcome = %+v, want matched", out)
	}
	if out.StarsEarned != 3 {
		t.Errorf("StarsEarned = %d, want 3", out.StarsEarned)
	}
	if s.Stars() != 3 {
		t.Errorf("Stars() = %d, want 3", s.Stars())
	}
	if s.Phase() != PhaseLevelComplete {
		t.Errorf("Phase() = %v, want %v", s.Phase(), PhaseLevelComplete)
	}
	if out.Message != "Complete level 2 to unlock a new story!" {
		t.Errorf("Message = %q", out.Message)
	}
	if len(out.Unlocked) != 0 {
		t.Errorf("level 1 unlocked %v, want none", out.Unlocked)
	}
}

func TestScenarioWrongFlowerLevelThree(t *testing.T) {
	s, err := NewSession(Options{Seed: 7, StartLevel: 3})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	target := s.Target()
	if len(target) != 3 {
		t.Fatalf("level 3 pattern length = %d, want 3", len(target))
	}
	s.HideTarget()

	wrongAt := target[1].Position
	var out Outcome
	for i, e := range target {
		flower := e.Flower
		if i == 1 {
			flower = wrongFlower(s, e.Flower)
		}
		out, err = s.PlaceFlower(e.Position, flower)
		if err != nil {
			t.Fatalf("PlaceFlower() failed: %v", err)
		}
	}

	if !out.Evaluated || out.Matched {
		t.Fatalf("outcome = %+v, want evaluated mismatch", out)
	}
	if !reflect.DeepEqual(out.Mismatches, []Position{wrongAt}) {
		t.Errorf("Mismatches = %v, want [%v]", out.Mismatches, wrongAt)
	}
	if len(out.Attempt) != 3 {
		t.Errorf("Attempt kept %d entries, want 3", len(out.Attempt))
	}

	// Failure is recoverable: same target, empty board, hints untouched.
	if s.Phase() != PhaseAwaitingInput {
		t.Errorf("Phase() = %v, want %v", s.Phase(), PhaseAwaitingInput)
	}
	if len(s.Placed()) != 0 {
		t.Errorf("ledger holds %d entries after failure, want 0", len(s.Placed()))
	}
	if !reflect.DeepEqual(s.Target(), target) {
		t.Error("target regenerated after failure")
	}
	if s.HintsRemaining() != 3 {
		t.Errorf("HintsRemaining() = %d, want 3", s.HintsRemaining())
	}

	// The retry succeeds against the same target.
	if out := solve(t, s); !out.Matched {
		t.Fatal("retry should match")
	}
	if got := s.Snapshot().Attempts; got != 2 {
		t.Errorf("Attempts = %d, want 2", got)
	}
}

func TestScenarioNoHintsRemaining(t *testing.T) {
	s := newTestSession(t, 5)
	s.HideTarget()

	for i := 0; i < 3; i++ {
		if err := s.RequestHint(); err != nil {
			t.Fatalf("RequestHint() #%d failed: %v", i+1, err)
		}
		if err := s.HideTarget(); err != nil {
			t.Fatalf("HideTarget() failed: %v", err)
		}
	}
	if s.HintsRemaining() != 0 {
		t.Fatalf("HintsRemaining() = %d, want 0", s.HintsRemaining())
	}

	first := s.Target()[0]
	if _, err := s.PlaceFlower(first.Position, first.Flower); err != nil {
		t.Fatalf("PlaceFlower() failed: %v", err)
	}
	before := s.Snapshot()

	if err := s.RequestHint(); !errors.Is(err, ErrNoHintsRemaining) {
		t.Fatalf("RequestHint() = %v, want ErrNoHintsRemaining", err)
	}
	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed on refused hint:\n%+v\n%+v", before, after)
	}
}

func TestHintClearsLedgerAndCostsStars(t *testing.T) {
	s := newTestSession(t, 11)
	s.HideTarget()

	first := s.Target()[0]
	s.PlaceFlower(first.Position, first.Flower)

	if err := s.RequestHint(); err != nil {
		t.Fatalf("RequestHint() failed: %v", err)
	}
	if s.Phase() != PhaseShowingTarget {
		t.Errorf("Phase() = %v, want %v", s.Phase(), PhaseShowingTarget)
	}
	if len(s.Placed()) != 0 {
		t.Error("hint should clear the board")
	}

	out := solve(t, s)
	if out.StarsEarned != 2 {
		t.Errorf("StarsEarned = %d, want 2", out.StarsEarned)
	}
	if out.HintsUsed != 1 {
		t.Errorf("HintsUsed = %d, want 1", out.HintsUsed)
	}
}

func TestHintOnlyWhileAwaitingInput(t *testing.T) {
	s := newTestSession(t, 1)
	if err := s.RequestHint(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("RequestHint() while showing = %v, want ErrWrongPhase", err)
	}
	if s.HintsRemaining() != 3 {
		t.Errorf("HintsRemaining() = %d, want 3", s.HintsRemaining())
	}
}

func TestScenarioGameComplete(t *testing.T) {
	s := newTestSession(t, 2024)

	for level := 1; level <= 3; level++ {
		out := solve(t, s)
		if !out.Matched {
			t.Fatalf("level %d not matched", level)
		}
		if out.FinalLevel != (level == 3) {
			t.Errorf("level %d: FinalLevel = %v", level, out.FinalLevel)
		}
		if level == 2 && !reflect.DeepEqual(out.Unlocked, []StoryID{2}) {
			t.Errorf("level 2 unlocked %v, want [2]", out.Unlocked)
		}
		if level == 3 && !reflect.DeepEqual(out.Unlocked, []StoryID{3}) {
			t.Errorf("level 3 newly unlocked %v, want [3]", out.Unlocked)
		}

		done, err := s.Advance()
		if err != nil {
			t.Fatalf("Advance() failed: %v", err)
		}
		if done != (level == 3) {
			t.Errorf("level %d: Advance() done = %v", level, done)
		}
	}

	if s.Level() != 4 {
		t.Errorf("Level() = %d, want 4", s.Level())
	}
	if !s.IsComplete() {
		t.Error("session should be complete")
	}
	if !reflect.DeepEqual(s.Unlocked(), []StoryID{1, 2, 3}) {
		t.Errorf("Unlocked() = %v, want all stories", s.Unlocked())
	}
	if s.Stars() != 9 {
		t.Errorf("Stars() = %d, want 9", s.Stars())
	}
	if got := len(s.History()); got != 3 {
		t.Errorf("History() has %d entries, want 3", got)
	}

	if err := s.StartLevel(3); !errors.Is(err, ErrGameComplete) {
		t.Errorf("StartLevel() after completion = %v, want ErrGameComplete", err)
	}
	if _, err := s.PlaceFlower(Pos(0, 0), "rose"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("PlaceFlower() after completion = %v, want ErrWrongPhase", err)
	}
}

func TestScenarioCellOccupied(t *testing.T) {
	// Level 3 has three cells, so two placements never trigger evaluation.
	s, err := NewSession(Options{Seed: 9, StartLevel: 3})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.HideTarget()

	if _, err := s.PlaceFlower(Pos(0, 0), "rose"); err != nil {
		t.Fatalf("first PlaceFlower() failed: %v", err)
	}
	if _, err := s.PlaceFlower(Pos(0, 0), "tulip"); !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("second PlaceFlower() = %v, want ErrCellOccupied", err)
	}
	if got := len(s.Placed()); got != 1 {
		t.Errorf("ledger length = %d, want 1", got)
	}
}

func TestPlaceUnknownFlower(t *testing.T) {
	s := newTestSession(t, 1)
	s.HideTarget()

	if _, err := s.PlaceFlower(Pos(0, 0), "cactus"); !errors.Is(err, ErrUnknownFlower) {
		t.Errorf("PlaceFlower(cactus) = %v, want ErrUnknownFlower", err)
	}
	if len(s.Placed()) != 0 {
		t.Error("unknown flower should not be recorded")
	}
}

func TestPlaceWhileShowingTarget(t *testing.T) {
	s := newTestSession(t, 1)
	if _, err := s.PlaceFlower(Pos(0, 0), "rose"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("PlaceFlower() while showing = %v, want ErrWrongPhase", err)
	}
}

func TestUndoLastMove(t *testing.T) {
	s, _ := NewSession(Options{Seed: 3, StartLevel: 3})
	s.HideTarget()

	if _, err := s.UndoLastMove(); !errors.Is(err, ErrEmptyUndo) {
		t.Errorf("UndoLastMove() on empty = %v, want ErrEmptyUndo", err)
	}

	s.PlaceFlower(Pos(0, 0), "rose")
	s.PlaceFlower(Pos(0, 1), "lily")
	if !s.Snapshot().CanUndo {
		t.Error("CanUndo should be true with placements")
	}

	e, err := s.UndoLastMove()
	if err != nil {
		t.Fatalf("UndoLastMove() failed: %v", err)
	}
	if e.Position != Pos(0, 1) {
		t.Errorf("undid %v, want 0,1", e.Position)
	}
	if got := len(s.Placed()); got != 1 {
		t.Errorf("ledger length = %d, want 1", got)
	}
}

func TestReplayKeepsLevel(t *testing.T) {
	s := newTestSession(t, 8)
	solve(t, s)

	if err := s.Replay(); err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if s.Level() != 1 {
		t.Errorf("Level() = %d, want 1", s.Level())
	}
	if s.HintsRemaining() != 3 || s.Phase() != PhaseShowingTarget {
		t.Errorf("replay did not reset the level: %+v", s.Snapshot())
	}
	if s.Stars() != 3 {
		t.Errorf("Stars() = %d, want 3 kept", s.Stars())
	}
}

func TestStartLevelBounds(t *testing.T) {
	s, _ := NewSession(Options{Seed: 1, StartLevel: 2})

	if err := s.StartLevel(1); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("StartLevel(1) = %v, want ErrLevelOutOfRange", err)
	}
	if err := s.StartLevel(4); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("StartLevel(4) = %v, want ErrLevelOutOfRange", err)
	}
	if err := s.StartLevel(2); err != nil {
		t.Errorf("StartLevel(2) failed: %v", err)
	}
}

func TestStarsEarnedBounds(t *testing.T) {
	tests := []struct{ hints, want int }{
		{-2, 0}, {0, 0}, {1, 1}, {2, 2}, {3, 3}, {7, 3},
	}
	for _, tt := range tests {
		if got := StarsEarned(tt.hints, 3); got != tt.want {
			t.Errorf("StarsEarned(%d) = %d, want %d", tt.hints, got, tt.want)
		}
	}
}

func TestSessionDeterminism(t *testing.T) {
	s1 := newTestSession(t, 777)
	s2 := newTestSession(t, 777)

	for level := 1; level <= 3; level++ {
		if !reflect.DeepEqual(s1.Target(), s2.Target()) {
			t.Fatalf("level %d: targets differ", level)
		}
		solve(t, s1)
		solve(t, s2)
		s1.Advance()
		s2.Advance()
	}
}
