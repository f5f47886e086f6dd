package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// GameKeyMap defines the key bindings for the planting screen.
type GameKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Flower    key.Binding
	Cycle     key.Binding
	Place     key.Binding
	Hint      key.Binding
	Undo      key.Binding
	Next      key.Binding
	Replay    key.Binding
	Storybook key.Binding
	Contrast  key.Binding
	Voice     key.Binding
	Audio     key.Binding
	TextSize  key.Binding
	Simplify  key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flower, k.Place, k.Hint, k.Undo, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Flower, k.Cycle, k.Place, k.Undo, k.Hint},
		{k.Next, k.Replay, k.Storybook, k.Back},
		{k.Contrast, k.Voice, k.Audio, k.TextSize, k.Simplify},
		{k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Flower: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick flower"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next flower"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "plant"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hint"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "backspace"),
			key.WithHelp("u", "undo"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next level"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay level"),
		),
		Storybook: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "storybook"),
		),
		Contrast: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "contrast"),
		),
		Voice: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "voice guide"),
		),
		Audio: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sound"),
		),
		TextSize: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "text size"),
		),
		Simplify: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "simple mode"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// flowerSlot returns the zero-based palette slot for a digit key.
func flowerSlot(msg tea.KeyMsg) (int, bool) {
	n, err := strconv.Atoi(msg.String())
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n - 1, true
}

// StorybookKeyMap defines the key bindings for the storybook.
type StorybookKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Read key.Binding
	Stop key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StorybookKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Read, k.Stop, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StorybookKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Read, k.Stop},
		{k.Back, k.Quit},
	}
}

// DefaultStorybookKeyMap returns default key bindings.
func DefaultStorybookKeyMap() StorybookKeyMap {
	return StorybookKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Read: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "read aloud"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop reading"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a title menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
