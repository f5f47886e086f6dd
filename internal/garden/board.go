// Package garden implements the Memory Garden pattern game engine:
// pattern generation, move recording, order-independent comparison,
// hint consumption, and level/story progression.
//
// The engine is pure logic. It performs no I/O, starts no goroutines and
// never waits on time; the platform layer schedules reveal/hide
// transitions and renders Snapshot values.
package garden

import (
	"fmt"
	"sort"
)

// BoardSize is the width and height of the (square) garden board.
const BoardSize = 3

// BoardCells is the number of cells on the board.
const BoardCells = BoardSize * BoardSize

// Position identifies a board cell. Comparable, so it can key a map.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Index returns the row-major cell index (0..8).
func (p Position) Index() int {
	return p.Row*BoardSize + p.Col
}

// String formats the position as "row,col".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// AllPositions returns every board cell in row-major order.
func AllPositions() []Position {
	out := make([]Position, 0, BoardCells)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			out = append(out, Position{Row: row, Col: col})
		}
	}
	return out
}

// sortPositions orders positions row-major in place.
func sortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].Index() < ps[j].Index()
	})
}

// PatternEntry is a flower placed at a position, either as part of the
// target pattern or as a recorded player move.
type PatternEntry struct {
	Position Position
	Flower   string
}

// Pattern is an ordered sequence of entries whose positions are pairwise
// unique. Order is generation/recording order and never affects comparison.
type Pattern []PatternEntry

// Clone returns an independent copy of the pattern.
func (p Pattern) Clone() Pattern {
	if p == nil {
		return nil
	}
	out := make(Pattern, len(p))
	copy(out, p)
	return out
}

// FlowerAt returns the flower placed at pos, if any.
func (p Pattern) FlowerAt(pos Position) (string, bool) {
	for _, e := range p {
		if e.Position == pos {
			return e.Flower, true
		}
	}
	return "", false
}

// Positions returns the positions of the pattern in pattern order.
func (p Pattern) Positions() []Position {
	out := make([]Position, len(p))
	for i, e := range p {
		out[i] = e.Position
	}
	return out
}

// Validate checks that every position is on the board and appears once.
func (p Pattern) Validate() error {
	seen := make(map[Position]bool, len(p))
	for _, e := range p {
		if !e.Position.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidPosition, e.Position)
		}
		if seen[e.Position] {
			return fmt.Errorf("%w: duplicate position %s", ErrCellOccupied, e.Position)
		}
		seen[e.Position] = true
	}
	return nil
}
