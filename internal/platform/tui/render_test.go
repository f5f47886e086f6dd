package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-garden/internal/garden"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Rose", 9, "Rose"},
		{"4 Sunflower", 9, "4 Sunflow"},
		{"", 3, ""},
		{"abc", 0, "abc"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestHintPips(t *testing.T) {
	tests := []struct {
		remaining, budget int
		want              string
	}{
		{3, 3, "●●●"},
		{1, 3, "●○○"},
		{0, 3, "○○○"},
		{-1, 2, "○○"},
	}

	for _, tt := range tests {
		if got := hintPips(tt.remaining, tt.budget); got != tt.want {
			t.Errorf("hintPips(%d, %d) = %q, want %q", tt.remaining, tt.budget, got, tt.want)
		}
	}
}

func TestRenderBoardShowsFlowers(t *testing.T) {
	catalog := garden.DefaultCatalog()
	pattern := garden.Pattern{
		{Position: garden.Pos(0, 0), Flower: "rose"},
		{Position: garden.Pos(2, 1), Flower: "lily"},
	}

	for size := 1; size <= 3; size++ {
		out := renderBoard(boardView{pattern: pattern, catalog: catalog, textSize: size}, DefaultTheme())
		if !strings.Contains(out, "1 Rose") {
			t.Errorf("size %d: board missing rose:\n%s", size, out)
		}
		if !strings.Contains(out, "5 Lily") {
			t.Errorf("size %d: board missing lily:\n%s", size, out)
		}
	}
}

func TestRenderBoardGrowsWithTextSize(t *testing.T) {
	catalog := garden.DefaultCatalog()
	small := renderBoard(boardView{catalog: catalog, textSize: 1}, DefaultTheme())
	large := renderBoard(boardView{catalog: catalog, textSize: 3}, DefaultTheme())

	if lipgloss.Width(large) <= lipgloss.Width(small) {
		t.Errorf("large board width %d not wider than small %d", lipgloss.Width(large), lipgloss.Width(small))
	}
	if lipgloss.Height(large) <= lipgloss.Height(small) {
		t.Errorf("large board height %d not taller than small %d", lipgloss.Height(large), lipgloss.Height(small))
	}
}

func TestPhasePrompt(t *testing.T) {
	tests := []struct {
		snap garden.Snapshot
		want string
	}{
		{garden.Snapshot{Phase: garden.PhaseShowingTarget, PatternSize: 3}, "Memorize these 3"},
		{garden.Snapshot{Phase: garden.PhaseAwaitingInput, PatternSize: 3, Placed: garden.Pattern{{}}}, "1/3 planted"},
		{garden.Snapshot{Phase: garden.PhaseLevelComplete, Level: 1, MaxLevel: 3}, "next level"},
		{garden.Snapshot{Phase: garden.PhaseLevelComplete, Level: 3, MaxLevel: 3}, "finish the garden"},
		{garden.Snapshot{Phase: garden.PhaseGameComplete}, "complete"},
	}

	for _, tt := range tests {
		t.Run(tt.snap.Phase.String(), func(t *testing.T) {
			if got := phasePrompt(tt.snap); !strings.Contains(got, tt.want) {
				t.Errorf("phasePrompt() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestThemeFlowerStyleWraps(t *testing.T) {
	theme := HighContrastTheme()
	n := len(theme.Flowers)
	if got, want := theme.FlowerStyle(n).Render("x"), theme.FlowerStyle(0).Render("x"); got != want {
		t.Errorf("FlowerStyle(%d) does not wrap to FlowerStyle(0)", n)
	}
}
