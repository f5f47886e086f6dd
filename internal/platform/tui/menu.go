package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceStorybook
	ChoiceHallOfFame
	ChoiceQuit
)

// MenuItem represents a selectable entry on the title screen.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

// TitleMenu is the title screen picker.
type TitleMenu struct {
	items  []MenuItem
	cursor int
}

// NewTitleMenu creates the title menu. The hall of fame entry is only
// offered when runs can be read back.
func NewTitleMenu(withHallOfFame bool) TitleMenu {
	items := []MenuItem{
		{Title: "Start planting", Choice: ChoicePlay},
		{Title: "Storybook", Choice: ChoiceStorybook},
	}
	if withHallOfFame {
		items = append(items, MenuItem{Title: "Hall of fame", Choice: ChoiceHallOfFame})
	}
	items = append(items, MenuItem{Title: "Quit", Choice: ChoiceQuit})

	return TitleMenu{items: items}
}

// Update moves the cursor and reports a choice when one is made.
func (m TitleMenu) Update(msg tea.KeyMsg) (TitleMenu, MenuChoice) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		return m, ChoiceQuit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			return m, m.items[m.cursor].Choice
		}
	}

	return m, ChoiceNone
}

// Items returns the menu entries in display order.
func (m TitleMenu) Items() []MenuItem {
	return m.items
}

// View renders the title screen.
func (m TitleMenu) View(theme Theme, width int, resumable bool) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("M E M O R Y   G A R D E N"), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Label.Render("Remember where each flower grows, then plant them back."), width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		title := item.Title
		if item.Choice == ChoicePlay && resumable {
			title = "Back to the garden"
		}

		line := theme.MenuItem.Render("  " + title)
		if i == m.cursor {
			line = theme.MenuActive.Render("> " + title)
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), width))
	b.WriteString("\n")

	return b.String()
}
