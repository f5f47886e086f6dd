package garden

import "math/rand"

// SizeFormula computes how many flowers a level's pattern holds:
// min(Cap, Base + level/Divisor).
type SizeFormula struct {
	Base    int
	Divisor int
	Cap     int
}

// DefaultSizeFormula is base 2, one extra flower every 2 levels, capped at the board.
func DefaultSizeFormula() SizeFormula {
	return SizeFormula{Base: 2, Divisor: 2, Cap: BoardCells}
}

// Size returns the pattern size for level. The result is always in
// [1, BoardCells], whatever the formula parameters.
func (f SizeFormula) Size(level int) int {
	if level < 1 {
		level = 1
	}
	div := f.Divisor
	if div <= 0 {
		div = 1
	}
	limit := f.Cap
	if limit <= 0 || limit > BoardCells {
		limit = BoardCells
	}

	size := f.Base + level/div
	if size > limit {
		size = limit
	}
	if size < 1 {
		size = 1
	}
	return size
}

// Generator produces target patterns.
type Generator struct {
	rng     Rand
	catalog *Catalog
	formula SizeFormula
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(catalog *Catalog, formula SizeFormula, seed int64) *Generator {
	return NewGeneratorWithRand(catalog, formula, rand.New(rand.NewSource(seed)))
}

// NewGeneratorWithRand creates a generator drawing from rng.
func NewGeneratorWithRand(catalog *Catalog, formula SizeFormula, rng Rand) *Generator {
	return &Generator{rng: rng, catalog: catalog, formula: formula}
}

// Formula returns the generator's size formula.
func (g *Generator) Formula() SizeFormula {
	return g.formula
}

// Generate returns a fresh pattern for level. Positions come from a full
// board shuffle, so they are unique by construction; each flower is drawn
// independently of its position.
func (g *Generator) Generate(level int) Pattern {
	size := g.formula.Size(level)

	cells := AllPositions()
	ShufflePositions(g.rng, cells)

	pattern := make(Pattern, 0, size)
	for _, pos := range cells[:size] {
		kind := g.catalog.At(Pick(g.rng, g.catalog.Len()))
		pattern = append(pattern, PatternEntry{Position: pos, Flower: kind.ID})
	}
	return pattern
}
