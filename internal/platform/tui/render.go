package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-garden/internal/garden"
)

// cellGeometry is the inner size of a board cell per text size.
var cellGeometry = map[int]struct{ w, h int }{
	1: {w: 9, h: 1},
	2: {w: 11, h: 3},
	3: {w: 13, h: 5},
}

// boardView is everything the board renderer needs for one frame.
type boardView struct {
	pattern    garden.Pattern
	mismatches []garden.Position
	cursor     garden.Position
	showCursor bool
	catalog    *garden.Catalog
	textSize   int
}

// renderBoard draws the 3x3 garden.
func renderBoard(v boardView, theme Theme) string {
	geom, ok := cellGeometry[v.textSize]
	if !ok {
		geom = cellGeometry[1]
	}

	flowers := make(map[garden.Position]string, len(v.pattern))
	for _, e := range v.pattern {
		flowers[e.Position] = e.Flower
	}
	wrong := make(map[garden.Position]bool, len(v.mismatches))
	for _, p := range v.mismatches {
		wrong[p] = true
	}

	rows := make([]string, 0, garden.BoardSize)
	for r := 0; r < garden.BoardSize; r++ {
		cells := make([]string, 0, garden.BoardSize)
		for c := 0; c < garden.BoardSize; c++ {
			pos := garden.Pos(r, c)

			style := theme.Cell
			switch {
			case wrong[pos]:
				style = theme.CellMismatch
			case v.showCursor && pos == v.cursor:
				style = theme.CellCursor
			}

			label := theme.CellEmpty.Render("·")
			if id, ok := flowers[pos]; ok {
				label = flowerLabel(v.catalog, id, geom.w, theme)
			}
			if wrong[pos] && geom.h >= 3 {
				label += "\n" + theme.Warning.Render("✗")
			}

			cells = append(cells, style.
				Width(geom.w).
				Height(geom.h).
				Align(lipgloss.Center, lipgloss.Center).
				Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// flowerLabel renders "<slot> <name>" in the flower's color, cut to width.
// The slot number keeps flowers distinguishable without color.
func flowerLabel(catalog *garden.Catalog, id string, width int, theme Theme) string {
	slot := -1
	for i, k := range catalog.Kinds() {
		if k.ID == id {
			slot = i
			break
		}
	}
	text := truncate(fmt.Sprintf("%d %s", slot+1, catalog.Name(id)), width)
	return theme.FlowerStyle(slot).Render(text)
}

// renderPalette draws the selectable flower list.
func renderPalette(catalog *garden.Catalog, selected int, theme Theme) string {
	items := make([]string, 0, catalog.Len())
	for i, k := range catalog.Kinds() {
		text := theme.FlowerStyle(i).Render(fmt.Sprintf("%d %s", i+1, k.Name))
		if i == selected {
			items = append(items, theme.PaletteActive.Render("> "+text))
		} else {
			items = append(items, theme.PaletteItem.Render("  "+text))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

// renderHUD draws the level, star and hint counters.
func renderHUD(snap garden.Snapshot, hintBudget int, theme Theme) string {
	level := snap.Level
	if level > snap.MaxLevel {
		level = snap.MaxLevel
	}
	sep := theme.Label.Render("  |  ")
	return theme.Label.Render("Level ") + theme.Value.Render(fmt.Sprintf("%d/%d", level, snap.MaxLevel)) +
		sep + theme.Label.Render("Stars ") + theme.Stars.Render(fmt.Sprintf("★ %d", snap.Stars)) +
		sep + theme.Label.Render("Hints ") + theme.Value.Render(hintPips(snap.HintsRemaining, hintBudget))
}

// hintPips shows remaining hints as filled and empty pips.
func hintPips(remaining, budget int) string {
	if remaining < 0 {
		remaining = 0
	}
	if budget < remaining {
		budget = remaining
	}
	return strings.Repeat("●", remaining) + strings.Repeat("○", budget-remaining)
}

// phasePrompt is the one-line instruction for the current phase.
func phasePrompt(snap garden.Snapshot) string {
	switch snap.Phase {
	case garden.PhaseShowingTarget:
		return fmt.Sprintf("Memorize these %d flowers!", snap.PatternSize)
	case garden.PhaseAwaitingInput:
		return fmt.Sprintf("Plant the flowers from memory (%d/%d planted)", len(snap.Placed), snap.PatternSize)
	case garden.PhaseLevelComplete:
		if snap.Level >= snap.MaxLevel {
			return "Level complete! Press n to finish the garden or r to replay."
		}
		return "Level complete! Press n for the next level or r to replay."
	case garden.PhaseGameComplete:
		return "The garden is complete! Press b for the storybook or q to quit."
	default:
		return ""
	}
}

// describePos names a cell for narration (1-based).
func describePos(p garden.Position) string {
	return fmt.Sprintf("row %d, column %d", p.Row+1, p.Col+1)
}

// pluralStars formats a star count.
func pluralStars(n int) string {
	if n == 1 {
		return "1 star"
	}
	return fmt.Sprintf("%d stars", n)
}

// truncate cuts s to at most width runes.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	return string(r[:width])
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
