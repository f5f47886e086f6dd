package garden

import "fmt"

// Ledger records the player's placements for the current attempt.
// It holds at most one flower per cell.
type Ledger struct {
	entries Pattern
}

// Record appends a placement. It fails, leaving the ledger unchanged, when
// pos is off the board or already holds a flower.
func (l *Ledger) Record(pos Position, flower string) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	if l.Occupied(pos) {
		return fmt.Errorf("%w: %s", ErrCellOccupied, pos)
	}
	l.entries = append(l.entries, PatternEntry{Position: pos, Flower: flower})
	return nil
}

// Undo removes and returns the most recent placement.
func (l *Ledger) Undo() (PatternEntry, error) {
	n := len(l.entries)
	if n == 0 {
		return PatternEntry{}, ErrEmptyUndo
	}
	last := l.entries[n-1]
	l.entries = l.entries[:n-1]
	return last, nil
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.entries = l.entries[:0]
}

// Len returns the number of recorded placements.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// IsFull reports whether the ledger holds exactly targetSize placements.
func (l *Ledger) IsFull(targetSize int) bool {
	return len(l.entries) == targetSize
}

// CanUndo reports whether there is a placement to undo.
func (l *Ledger) CanUndo() bool {
	return len(l.entries) > 0
}

// Occupied reports whether pos already holds a flower.
func (l *Ledger) Occupied(pos Position) bool {
	_, ok := l.entries.FlowerAt(pos)
	return ok
}

// Entries returns a copy of the recorded placements in recording order.
func (l *Ledger) Entries() Pattern {
	return l.entries.Clone()
}
