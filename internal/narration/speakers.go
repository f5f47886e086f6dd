package narration

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ReadingTime estimates how long text takes to say at wpm words per minute.
// Never less than 600ms so short lines stay readable as captions.
func ReadingTime(text string, wpm int) time.Duration {
	if wpm <= 0 {
		wpm = 160
	}
	words := len(strings.Fields(text))
	d := time.Duration(words) * time.Minute / time.Duration(wpm)
	if d < 600*time.Millisecond {
		d = 600 * time.Millisecond
	}
	return d
}

// CaptionSpeaker shows each line through show and holds it for its reading
// time. show must not block.
type CaptionSpeaker struct {
	show func(text string)
	wpm  int
}

// NewCaptionSpeaker creates a caption speaker pacing lines at wpm.
func NewCaptionSpeaker(show func(text string), wpm int) *CaptionSpeaker {
	return &CaptionSpeaker{show: show, wpm: wpm}
}

// Speak shows text and waits for its reading time or cancellation.
func (c *CaptionSpeaker) Speak(ctx context.Context, text string) error {
	c.show(text)

	timer := time.NewTimer(ReadingTime(text, c.wpm))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// LogSpeaker writes lines to a logger. Used for headless runs.
type LogSpeaker struct {
	logger *log.Logger
}

// NewLogSpeaker creates a speaker that logs at info level.
func NewLogSpeaker(logger *log.Logger) *LogSpeaker {
	return &LogSpeaker{logger: logger}
}

// Speak logs text.
func (l *LogSpeaker) Speak(_ context.Context, text string) error {
	l.logger.Info("narration", "text", text)
	return nil
}
