package garden

// Snapshot is a read-only copy of session state for renderers.
type Snapshot struct {
	Level          int
	MaxLevel       int
	Stars          int
	HintsRemaining int
	PatternSize    int
	Phase          Phase
	Target         Pattern
	Placed         Pattern
	Unlocked       []StoryID
	CanUndo        bool
	Attempts       int
	HintsUsed      int
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Level:          s.level,
		MaxLevel:       s.rules.MaxLevel,
		Stars:          s.stars,
		HintsRemaining: s.hints,
		PatternSize:    len(s.target),
		Phase:          s.phase,
		Target:         s.target.Clone(),
		Placed:         s.ledger.Entries(),
		Unlocked:       s.unlocked.List(),
		CanUndo:        s.phase == PhaseAwaitingInput && s.ledger.CanUndo(),
		Attempts:       s.attempts,
		HintsUsed:      s.hintsUsed,
	}
}

// TargetVisible reports whether the renderer should show the target.
func (s Snapshot) TargetVisible() bool {
	return s.Phase == PhaseShowingTarget
}
