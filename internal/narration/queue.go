// Package narration provides the voice-guidance side channel: a FIFO queue
// of lines handed one at a time to a Speaker.
//
// The queue runs on its own goroutine. Enqueue never blocks, and cancelling
// narration never reaches back into the game session.
package narration

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Speaker voices a single line. Speak must return promptly once ctx is
// cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// SpeakerFunc adapts a function to the Speaker interface.
type SpeakerFunc func(ctx context.Context, text string) error

// Speak calls f(ctx, text).
func (f SpeakerFunc) Speak(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Queue is a FIFO narration queue.
type Queue struct {
	speaker Speaker
	logger  *log.Logger

	mu       sync.Mutex
	items    []string
	enabled  bool
	speaking bool
	cancel   context.CancelFunc // cancels the line being spoken
	wake     chan struct{}
}

// NewQueue creates an enabled queue. A nil logger discards output.
func NewQueue(speaker Speaker, logger *log.Logger) *Queue {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Queue{
		speaker: speaker,
		logger:  logger,
		enabled: true,
		wake:    make(chan struct{}, 1),
	}
}

// Enqueue appends a line. Ignored while the queue is disabled.
func (q *Queue) Enqueue(text string) {
	q.mu.Lock()
	if !q.enabled || text == "" {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, text)
	q.mu.Unlock()
	q.signal()
}

// Interrupt cancels the current line, drops pending lines and enqueues text.
func (q *Queue) Interrupt(text string) {
	q.Cancel()
	q.Enqueue(text)
}

// Cancel stops the current line and drops everything pending.
func (q *Queue) Cancel() {
	q.mu.Lock()
	q.items = nil
	if q.cancel != nil {
		q.cancel()
	}
	q.mu.Unlock()
}

// SetEnabled turns narration on or off. Turning it off cancels in-flight
// and pending lines.
func (q *Queue) SetEnabled(enabled bool) {
	q.mu.Lock()
	q.enabled = enabled
	q.mu.Unlock()
	if !enabled {
		q.Cancel()
	}
}

// Enabled reports whether the queue accepts lines.
func (q *Queue) Enabled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.enabled
}

// Pending returns the number of lines waiting to be spoken.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Speaking reports whether a line is being spoken.
func (q *Queue) Speaking() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.speaking
}

// Run speaks queued lines in order until ctx is done.
func (q *Queue) Run(ctx context.Context) {
	for {
		text, lineCtx, ok := q.begin(ctx)
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
				continue
			}
		}

		err := q.speaker.Speak(lineCtx, text)
		q.finish()

		if err != nil && !errors.Is(err, context.Canceled) {
			q.logger.Warn("narration failed", "error", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// begin pops the oldest pending line and marks it in flight, under the
// same lock Cancel takes.
func (q *Queue) begin(ctx context.Context) (string, context.Context, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", nil, false
	}
	text := q.items[0]
	q.items = q.items[1:]

	lineCtx, cancel := context.WithCancel(ctx)
	q.speaking = true
	q.cancel = cancel
	return text, lineCtx, true
}

func (q *Queue) finish() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cancel != nil {
		q.cancel()
	}
	q.speaking = false
	q.cancel = nil
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
