package garden

import "errors"

// Engine errors. All of them are recoverable: the operation that returned
// one left the session unchanged.
var (
	ErrCellOccupied     = errors.New("garden: cell already has a flower")
	ErrInvalidPosition  = errors.New("garden: position is off the board")
	ErrEmptyUndo        = errors.New("garden: nothing to undo")
	ErrNoHintsRemaining = errors.New("garden: no hints remaining")
	ErrUnknownFlower    = errors.New("garden: unknown flower")
	ErrWrongPhase       = errors.New("garden: operation not allowed in current phase")
	ErrLevelOutOfRange  = errors.New("garden: level out of range")
	ErrGameComplete     = errors.New("garden: game already complete")
)
