package pomodoro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	c       chan time.Time
	stopped chan struct{}
}

func (f *fakeTicker) Chan() <-chan time.Time {
	return f.c
}

func (f *fakeTicker) Stop() {
	close(f.stopped)
}

type harness struct {
	t       *testing.T
	timer   *Timer
	tickers chan *fakeTicker
	current *fakeTicker
}

func newHarness(t *testing.T, d time.Duration) *harness {
	t.Helper()
	h := &harness{t: t, tickers: make(chan *fakeTicker, 16)}
	timer, err := New(d, WithTicker(func(time.Duration) Ticker {
		tk := &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
		h.tickers <- tk
		return tk
	}))
	require.NoError(t, err)
	h.timer = timer
	t.Cleanup(timer.Close)
	return h
}

func (h *harness) start() {
	h.t.Helper()
	require.True(h.t, h.timer.Start())
	h.current = <-h.tickers
	h.expect(EventStarted, StateRunning)
}

func (h *harness) tick() {
	h.t.Helper()
	select {
	case h.current.c <- time.Now():
	case <-time.After(time.Second):
		h.t.Fatal("tick was not consumed")
	}
}

func (h *harness) expect(kind EventKind, state State) Event {
	h.t.Helper()
	select {
	case ev := <-h.timer.Events():
		require.Equal(h.t, kind, ev.Kind)
		require.Equal(h.t, state, ev.State)
		return ev
	case <-time.After(time.Second):
		h.t.Fatalf("no %s event", kind)
		return Event{}
	}
}

func TestTimer_CompletesAfterDuration(t *testing.T) {
	h := newHarness(t, 3*time.Second)
	h.start()

	var remaining []time.Duration
	for range 3 {
		h.tick()
		remaining = append(remaining, h.expect(EventTick, StateRunning).Remaining)
	}
	assert.Equal(t, []time.Duration{2 * time.Second, time.Second, 0}, remaining)

	ev := h.expect(EventCompleted, StateCompleted)
	assert.Zero(t, ev.Remaining)
	assert.Equal(t, StateIdle, h.timer.State())
	assert.Equal(t, 3*time.Second, h.timer.Remaining())

	select {
	case <-h.current.stopped:
	case <-time.After(time.Second):
		t.Fatal("ticker was not stopped")
	}
}

func TestTimer_PauseKeepsRemaining(t *testing.T) {
	h := newHarness(t, 5*time.Second)
	h.start()
	h.tick()
	h.expect(EventTick, StateRunning)

	require.True(t, h.timer.Pause())
	ev := h.expect(EventPaused, StatePaused)
	assert.Equal(t, 4*time.Second, ev.Remaining)
	assert.False(t, h.timer.Pause())

	h.start()
	for range 4 {
		h.tick()
		h.expect(EventTick, StateRunning)
	}
	h.expect(EventCompleted, StateCompleted)
}

func TestTimer_ResetAndSetDuration(t *testing.T) {
	h := newHarness(t, 10*time.Second)
	h.start()
	assert.False(t, h.timer.Start(), "already running")
	h.tick()
	h.expect(EventTick, StateRunning)

	h.timer.Reset()
	ev := h.expect(EventReset, StateIdle)
	assert.Equal(t, 10*time.Second, ev.Remaining)

	require.NoError(t, h.timer.SetDuration(2*time.Second))
	ev = h.expect(EventReset, StateIdle)
	assert.Equal(t, 2*time.Second, ev.Remaining)
	assert.Equal(t, 2*time.Second, h.timer.Duration())

	assert.ErrorIs(t, h.timer.SetDuration(0), ErrInvalidDuration)
}

func TestTimer_StaleRunIsIgnored(t *testing.T) {
	h := newHarness(t, 3*time.Second)
	h.start()
	stale := h.current

	require.True(t, h.timer.Pause())
	h.expect(EventPaused, StatePaused)
	select {
	case <-stale.stopped:
	case <-time.After(time.Second):
		t.Fatal("paused run kept its ticker")
	}

	h.start()
	h.tick()
	ev := h.expect(EventTick, StateRunning)
	assert.Equal(t, 2*time.Second, ev.Remaining)
}

func TestTimer_Close(t *testing.T) {
	h := newHarness(t, time.Minute)
	h.start()
	h.timer.Close()

	_, ok := <-h.timer.Events()
	assert.False(t, ok)
	assert.False(t, h.timer.Start())
	h.timer.Reset()
}

func TestNew_InvalidDuration(t *testing.T) {
	_, err := New(500 * time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestTimer_EstimatedEnd(t *testing.T) {
	timer, err := New(DefaultDuration)
	require.NoError(t, err)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 9, 25, 0, 0, time.UTC), timer.EstimatedEnd(now))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 25 * time.Minute, want: "25:00"},
		{in: 61 * time.Second, want: "01:01"},
		{in: 1500 * time.Millisecond, want: "00:02"},
		{in: 0, want: "00:00"},
		{in: -time.Second, want: "00:00"},
		{in: 120 * time.Minute, want: "120:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}
