package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles for the garden.
type Theme struct {
	// Flower colors, indexed by catalog position (wrapping)
	Flowers []lipgloss.Style

	// Board cells
	Cell         lipgloss.Style
	CellCursor   lipgloss.Style
	CellMismatch lipgloss.Style
	CellEmpty    lipgloss.Style

	// HUD
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Stars    lipgloss.Style
	Status   lipgloss.Style
	Warning  lipgloss.Style
	Caption  lipgloss.Style
	Controls lipgloss.Style

	// Palette
	PaletteItem   lipgloss.Style
	PaletteActive lipgloss.Style

	// Storybook / menus
	MenuItem   lipgloss.Style
	MenuActive lipgloss.Style
	Locked     lipgloss.Style
	Paragraph  lipgloss.Style
	Border     lipgloss.Color
}

// DefaultTheme returns the normal garden palette.
func DefaultTheme() Theme {
	return Theme{
		Flowers: []lipgloss.Style{
			lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true), // Rose pink
			lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true), // Tulip magenta
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true), // Daisy white
			lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true), // Sunflower yellow
			lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true), // Lily lavender
			lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
			lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		},

		Cell:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("65")),
		CellCursor:   lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("118")),
		CellMismatch: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("196")),
		CellEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("58")),

		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Stars:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("209")),
		Caption:  lipgloss.NewStyle().Foreground(lipgloss.Color("195")).Italic(true),
		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		PaletteItem:   lipgloss.NewStyle().Padding(0, 1),
		PaletteActive: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("22")).Underline(true),

		MenuItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		MenuActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Locked:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		Paragraph:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Border:     lipgloss.Color("65"),
	}
}

// HighContrastTheme returns a black/white/yellow palette. Flowers keep
// distinct labels so color is never the only cue.
func HighContrastTheme() Theme {
	bright := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	return Theme{
		Flowers: []lipgloss.Style{
			bright,
			yellow,
			bright.Underline(true),
			yellow.Underline(true),
			bright.Reverse(true),
		},

		Cell:         lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("15")),
		CellCursor:   lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("11")),
		CellMismatch: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")),
		CellEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),

		Title:    yellow,
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Value:    bright,
		Stars:    yellow,
		Status:   bright,
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Caption:  yellow,
		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),

		PaletteItem:   lipgloss.NewStyle().Padding(0, 1),
		PaletteActive: lipgloss.NewStyle().Padding(0, 1).Reverse(true),

		MenuItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		MenuActive: yellow.Reverse(true),
		Locked:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Strikethrough(true),
		Paragraph:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Border:     lipgloss.Color("15"),
	}
}

// ThemeFor picks the palette for the contrast setting.
func ThemeFor(highContrast bool) Theme {
	if highContrast {
		return HighContrastTheme()
	}
	return DefaultTheme()
}

// FlowerStyle returns the style for the i-th catalog flower.
func (t Theme) FlowerStyle(i int) lipgloss.Style {
	if len(t.Flowers) == 0 || i < 0 {
		return lipgloss.NewStyle()
	}
	return t.Flowers[i%len(t.Flowers)]
}
