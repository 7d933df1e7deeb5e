// Package pomodoro implements a countdown timer that reports its progress as events.
package pomodoro

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the lifecycle state of a timer.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// EventKind identifies what happened to a timer.
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventTick      EventKind = "tick"
	EventPaused    EventKind = "paused"
	EventReset     EventKind = "reset"
	EventCompleted EventKind = "completed"
)

// Event is sent on the timer's channel after every change.
type Event struct {
	Kind      EventKind
	Remaining time.Duration
	State     State
}

// DefaultDuration is the classic pomodoro length.
const DefaultDuration = 25 * time.Minute

var ErrInvalidDuration = errors.New("duration must be at least one second")

// Ticker delivers the ticks that advance a running timer.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

type realTicker struct {
	*time.Ticker
}

func (t realTicker) Chan() <-chan time.Time {
	return t.C
}

func newRealTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

// Option configures a Timer.
type Option func(*Timer)

// WithTicker replaces the ticker factory.
func WithTicker(newTicker func(time.Duration) Ticker) Option {
	return func(t *Timer) {
		t.newTicker = newTicker
	}
}

// WithBuffer sets the capacity of the event channel.
func WithBuffer(n int) Option {
	return func(t *Timer) {
		t.events = make(chan Event, n)
	}
}

// Timer counts down a duration one second per tick.
// Each run is a goroutine owned by the timer; only the run of the current generation
// may change the remaining time. Events must be drained by the caller.
type Timer struct {
	mu         sync.Mutex
	duration   time.Duration
	remaining  time.Duration
	state      State
	generation uint64
	cancel     context.CancelFunc
	closed     bool

	events    chan Event
	newTicker func(time.Duration) Ticker
	step      time.Duration
}

// New creates an idle timer.
func New(duration time.Duration, opts ...Option) (*Timer, error) {
	if duration < time.Second {
		return nil, ErrInvalidDuration
	}
	t := &Timer{
		duration:  duration,
		remaining: duration,
		state:     StateIdle,
		newTicker: newRealTicker,
		step:      time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.events == nil {
		t.events = make(chan Event, 32)
	}
	return t, nil
}

// Events returns the channel on which the timer reports changes.
func (t *Timer) Events() <-chan Event {
	return t.events
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// Start begins or resumes the countdown. It reports false when the timer is already running.
func (t *Timer) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.state == StateRunning {
		return false
	}
	if t.remaining <= 0 {
		t.remaining = t.duration
	}

	t.stopRunLocked()
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.state = StateRunning
	gen := t.generation
	ticker := t.newTicker(t.step)
	go t.run(ctx, ticker, gen)

	t.emitLocked(EventStarted)
	return true
}

// Pause stops the countdown, keeping the remaining time. It reports false unless the timer was running.
func (t *Timer) Pause() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.state != StateRunning {
		return false
	}
	t.stopRunLocked()
	t.state = StatePaused
	t.emitLocked(EventPaused)
	return true
}

// Reset stops the countdown and restores the configured duration.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.stopRunLocked()
	t.state = StateIdle
	t.remaining = t.duration
	t.emitLocked(EventReset)
}

// SetDuration changes the configured duration and restarts the count from it.
// A running timer keeps running.
func (t *Timer) SetDuration(d time.Duration) error {
	if d < time.Second {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.duration = d
	t.remaining = d
	if !t.closed {
		t.emitLocked(EventReset)
	}
	return nil
}

// EstimatedEnd returns when the countdown would finish if it ran without pauses from now.
func (t *Timer) EstimatedEnd(now time.Time) time.Time {
	return now.Add(t.Remaining())
}

// Close stops the countdown and closes the event channel.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.stopRunLocked()
	t.closed = true
	close(t.events)
}

func (t *Timer) stopRunLocked() {
	t.generation++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Timer) run(ctx context.Context, ticker Ticker, gen uint64) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if !t.advance(gen) {
				return
			}
		}
	}
}

// advance applies one tick and reports whether the run should continue.
func (t *Timer) advance(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation || t.state != StateRunning {
		return false
	}

	t.remaining = max(t.remaining-t.step, 0)
	t.emitLocked(EventTick)
	if t.remaining > 0 {
		return true
	}

	t.state = StateCompleted
	t.emitLocked(EventCompleted)
	t.stopRunLocked()
	t.state = StateIdle
	t.remaining = t.duration
	return false
}

func (t *Timer) emitLocked(kind EventKind) {
	ev := Event{Kind: kind, Remaining: t.remaining, State: t.state}
	if kind == EventTick {
		select {
		case t.events <- ev:
		default:
		}
		return
	}
	t.events <- ev
}

// Format renders d as MM:SS, rounding partial seconds up.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
