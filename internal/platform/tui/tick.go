// Package tui provides the Bubble Tea front end for Memory Garden.
// It owns the session, schedules the reveal and feedback timers, and routes
// narration captions, sound cues and finished runs to their sinks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// revealDoneMsg ends a memorize phase. gen guards against stale timers left
// over from an earlier reveal.
type revealDoneMsg struct {
	gen int
}

// feedbackDoneMsg clears the mismatch highlight.
type feedbackDoneMsg struct {
	gen int
}

// captionMsg carries a narration caption from the narration goroutine.
// An empty text clears the caption.
type captionMsg struct {
	text   string
	closed bool
}

// revealCmd fires revealDoneMsg after d.
func revealCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return revealDoneMsg{gen: gen}
	})
}

// feedbackCmd fires feedbackDoneMsg after d.
func feedbackCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return feedbackDoneMsg{gen: gen}
	})
}
