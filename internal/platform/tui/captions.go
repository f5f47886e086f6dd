package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/memory-garden/internal/narration"
)

// captionFeed moves caption text from the narration goroutine into the
// Bubble Tea update loop.
type captionFeed struct {
	ch   chan string
	once sync.Once
	done chan struct{}
}

func newCaptionFeed() *captionFeed {
	return &captionFeed{
		ch:   make(chan string, 8),
		done: make(chan struct{}),
	}
}

// show hands text to the UI. It never blocks; captions are dropped if the
// UI falls behind.
func (f *captionFeed) show(text string) {
	select {
	case <-f.done:
	case f.ch <- text:
	default:
	}
}

func (f *captionFeed) close() {
	f.once.Do(func() { close(f.done) })
}

// wait returns a command that delivers the next caption.
func (f *captionFeed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case text := <-f.ch:
			return captionMsg{text: text}
		case <-f.done:
			return captionMsg{closed: true}
		}
	}
}

// speaker returns a caption speaker that clears the caption after each line.
func (f *captionFeed) speaker(wpm int) narration.Speaker {
	captions := narration.NewCaptionSpeaker(f.show, wpm)
	return narration.SpeakerFunc(func(ctx context.Context, text string) error {
		err := captions.Speak(ctx, text)
		f.show("")
		return err
	})
}
