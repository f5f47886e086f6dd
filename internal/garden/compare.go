package garden

// Evaluation is the result of comparing an attempt with a target.
type Evaluation struct {
	Matched bool

	// Mismatches holds every attempt position whose flower differs from the
	// target, or that is not part of the target. Row-major, no duplicates.
	Mismatches []Position

	// Missing holds target positions the attempt left empty. Row-major.
	Missing []Position
}

// IsMismatch reports whether pos was flagged as a wrong placement.
func (e Evaluation) IsMismatch(pos Position) bool {
	for _, p := range e.Mismatches {
		if p == pos {
			return true
		}
	}
	return false
}

// Evaluate compares attempt against target independently of entry order.
// It has no side effects.
func Evaluate(target, attempt Pattern) Evaluation {
	want := make(map[Position]string, len(target))
	for _, e := range target {
		want[e.Position] = e.Flower
	}

	matched := len(attempt) == len(target)
	covered := make(map[Position]bool, len(attempt))
	flagged := make(map[Position]bool)
	var mismatches []Position

	for _, e := range attempt {
		flower, ok := want[e.Position]
		if !ok || flower != e.Flower {
			matched = false
			if !flagged[e.Position] {
				flagged[e.Position] = true
				mismatches = append(mismatches, e.Position)
			}
			continue
		}
		covered[e.Position] = true
	}

	var missing []Position
	for _, e := range target {
		if !covered[e.Position] && !flagged[e.Position] {
			missing = append(missing, e.Position)
		}
		if !covered[e.Position] {
			matched = false
		}
	}

	sortPositions(mismatches)
	sortPositions(missing)

	return Evaluation{
		Matched:    matched,
		Mismatches: mismatches,
		Missing:    missing,
	}
}
