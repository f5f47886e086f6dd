package garden

import (
	"math/rand"
	"testing"
)

func TestSizeFormula(t *testing.T) {
	tests := []struct {
		name    string
		formula SizeFormula
		level   int
		want    int
	}{
		{"level 1", DefaultSizeFormula(), 1, 2},
		{"level 2", DefaultSizeFormula(), 2, 3},
		{"level 3", DefaultSizeFormula(), 3, 3},
		{"level 4", DefaultSizeFormula(), 4, 4},
		{"level 14 hits cap", DefaultSizeFormula(), 14, 9},
		{"level 100 stays at cap", DefaultSizeFormula(), 100, 9},
		{"level 0 treated as 1", DefaultSizeFormula(), 0, 2},
		{"negative level treated as 1", DefaultSizeFormula(), -5, 2},
		{"cap above board clamped", SizeFormula{Base: 2, Divisor: 1, Cap: 50}, 20, 9},
		{"small cap", SizeFormula{Base: 2, Divisor: 2, Cap: 3}, 9, 3},
		{"zero divisor", SizeFormula{Base: 1, Divisor: 0, Cap: 9}, 3, 4},
		{"zero base", SizeFormula{Base: 0, Divisor: 5, Cap: 9}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.formula.Size(tt.level); got != tt.want {
				t.Errorf("Size(%d) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestGenerateSizeAndUniqueness(t *testing.T) {
	catalog := DefaultCatalog()
	formula := DefaultSizeFormula()

	for seed := int64(1); seed <= 50; seed++ {
		g := NewGenerator(catalog, formula, seed)
		for level := 1; level <= 20; level++ {
			p := g.Generate(level)

			want := 2 + level/2
			if want > BoardCells {
				want = BoardCells
			}
			if len(p) != want {
				t.Fatalf("seed %d level %d: len = %d, want %d", seed, level, len(p), want)
			}
			if err := p.Validate(); err != nil {
				t.Fatalf("seed %d level %d: invalid pattern: %v", seed, level, err)
			}
			for _, e := range p {
				if !catalog.Has(e.Flower) {
					t.Fatalf("seed %d level %d: unknown flower %q", seed, level, e.Flower)
				}
			}
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	g1 := NewGenerator(DefaultCatalog(), DefaultSizeFormula(), 12345)
	g2 := NewGenerator(DefaultCatalog(), DefaultSizeFormula(), 12345)

	for level := 1; level <= 10; level++ {
		p1 := g1.Generate(level)
		p2 := g2.Generate(level)
		if len(p1) != len(p2) {
			t.Fatalf("level %d: length mismatch %d vs %d", level, len(p1), len(p2))
		}
		for i := range p1 {
			if p1[i] != p2[i] {
				t.Errorf("level %d entry %d: %v vs %v", level, i, p1[i], p2[i])
			}
		}
	}
}

func TestGenerateCoversBoard(t *testing.T) {
	// Over many draws every cell and every flower should appear.
	g := NewGenerator(DefaultCatalog(), DefaultSizeFormula(), 7)
	cells := make(map[Position]int)
	flowers := make(map[string]int)

	for i := 0; i < 500; i++ {
		for _, e := range g.Generate(1) {
			cells[e.Position]++
			flowers[e.Flower]++
		}
	}

	if len(cells) != BoardCells {
		t.Errorf("only %d of %d cells were ever used", len(cells), BoardCells)
	}
	if len(flowers) != len(DefaultFlowers) {
		t.Errorf("only %d of %d flowers were ever used", len(flowers), len(DefaultFlowers))
	}
}

func TestShufflePositionsIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	ps := AllPositions()
	ShufflePositions(rng, ps)

	if len(ps) != BoardCells {
		t.Fatalf("len = %d, want %d", len(ps), BoardCells)
	}
	seen := make(map[Position]bool)
	for _, p := range ps {
		if seen[p] {
			t.Fatalf("duplicate position %v after shuffle", p)
		}
		seen[p] = true
	}
}

func TestPickSingleChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		if got := Pick(rng, 1); got != 0 {
			t.Fatalf("Pick(1) = %d, want 0", got)
		}
	}
}

func TestCatalogValidation(t *testing.T) {
	if _, err := NewCatalog(nil); err == nil {
		t.Error("expected error for empty catalog")
	}
	if _, err := NewCatalog([]FlowerKind{{ID: ""}}); err == nil {
		t.Error("expected error for empty id")
	}
	if _, err := NewCatalog([]FlowerKind{{ID: "rose"}, {ID: "rose"}}); err == nil {
		t.Error("expected error for duplicate id")
	}

	c, err := NewCatalog([]FlowerKind{{ID: "fern"}})
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	if c.Name("fern") != "fern" {
		t.Errorf("Name defaulted to %q, want %q", c.Name("fern"), "fern")
	}
}
