package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-garden/internal/garden"
	"github.com/vovakirdan/memory-garden/internal/narration"
)

// StorybookModel lists the stories and reads unlocked ones aloud.
type StorybookModel struct {
	session  *garden.Session
	narrator *narration.Queue
	keys     StorybookKeyMap
	help     help.Model

	cursor    int
	open      bool // reading the story under the cursor
	notice    string
	goingBack bool
	quitting  bool
}

// NewStorybookModel creates a storybook over the session's stories.
func NewStorybookModel(session *garden.Session, narrator *narration.Queue) StorybookModel {
	h := help.New()
	h.ShowAll = false

	return StorybookModel{
		session:  session,
		narrator: narrator,
		keys:     DefaultStorybookKeyMap(),
		help:     h,
	}
}

// Update handles storybook input.
func (m StorybookModel) Update(msg tea.Msg) (StorybookModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		stories := m.session.Stories()
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.open {
				m.open = false
				m.narrator.Cancel()
				return m, nil
			}
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if !m.open && m.cursor > 0 {
				m.cursor--
				m.notice = ""
			}

		case key.Matches(msg, m.keys.Down):
			if !m.open && m.cursor < len(stories)-1 {
				m.cursor++
				m.notice = ""
			}

		case key.Matches(msg, m.keys.Open):
			if len(stories) == 0 {
				return m, nil
			}
			st := stories[m.cursor]
			if !m.session.IsUnlocked(st.ID) {
				m.notice = fmt.Sprintf("Complete level %d to unlock this story.", st.UnlockLevel)
				m.narrator.Interrupt(m.notice)
				return m, nil
			}
			m.open = true
			m.notice = ""

		case key.Matches(msg, m.keys.Read):
			if len(stories) == 0 {
				return m, nil
			}
			st := stories[m.cursor]
			if !m.session.IsUnlocked(st.ID) {
				return m, nil
			}
			m.open = true
			m.readAloud(st)

		case key.Matches(msg, m.keys.Stop):
			m.narrator.Cancel()
			m.notice = "Reading stopped."
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

// readAloud replaces whatever is being narrated with the story.
func (m *StorybookModel) readAloud(st garden.Story) {
	if !m.narrator.Enabled() {
		m.notice = "Voice guidance is off. Press v in the garden to turn it on."
		return
	}
	m.narrator.Interrupt(st.Title)
	for _, p := range st.Paragraphs {
		m.narrator.Enqueue(p)
	}
	m.notice = "Reading aloud..."
}

// View renders the storybook.
func (m StorybookModel) View(theme Theme, width int) string {
	var b strings.Builder
	stories := m.session.Stories()

	b.WriteString(centerText(theme.Title.Render("STORYBOOK"), width))
	b.WriteString("\n\n")

	if m.open && m.cursor < len(stories) {
		b.WriteString(m.renderStory(stories[m.cursor], theme, width))
	} else {
		b.WriteString(m.renderList(stories, theme))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Status.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Controls.Render(m.help.View(m.keys)))
	return b.String()
}

func (m StorybookModel) renderList(stories []garden.Story, theme Theme) string {
	var b strings.Builder
	for i, st := range stories {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var line string
		switch {
		case !m.session.IsUnlocked(st.ID):
			line = theme.Locked.Render(fmt.Sprintf("%s%d. %s (complete level %d)", cursor, st.ID, st.Title, st.UnlockLevel))
		case i == m.cursor:
			line = theme.MenuActive.Render(fmt.Sprintf("%s%d. %s", cursor, st.ID, st.Title))
		default:
			line = theme.MenuItem.Render(fmt.Sprintf("%s%d. %s", cursor, st.ID, st.Title))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m StorybookModel) renderStory(st garden.Story, theme Theme, width int) string {
	textWidth := width - 8
	if textWidth < 30 {
		textWidth = 30
	}
	if textWidth > 72 {
		textWidth = 72
	}

	body := theme.Paragraph.Width(textWidth).Render(strings.Join(st.Paragraphs, "\n\n"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(theme.Title.Render(st.Title) + "\n\n" + body)
	return box + "\n"
}

// IsGoingBack returns true if user wants to leave the storybook.
func (m StorybookModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StorybookModel) IsQuitting() bool {
	return m.quitting
}
