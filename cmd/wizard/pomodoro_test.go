package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/estudazilla/internal/pomodoro"
	"github.com/at-ishikawa/estudazilla/internal/settings"
	"github.com/at-ishikawa/estudazilla/internal/testutil"
)

// stoppedTicker never ticks, so the output only depends on the commands.
type stoppedTicker struct {
	c chan time.Time
}

func (t stoppedTicker) Chan() <-chan time.Time { return t.c }
func (t stoppedTicker) Stop()                  {}

func disableColor(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func newStoppedTimer(t *testing.T, d time.Duration) *pomodoro.Timer {
	t.Helper()
	timer, err := pomodoro.New(d, pomodoro.WithTicker(func(time.Duration) pomodoro.Ticker {
		return stoppedTicker{c: make(chan time.Time)}
	}))
	require.NoError(t, err)
	return timer
}

func TestRunPomodoro(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 5, 1, 14, 0, 0, 0, time.Local) }

	tests := []struct {
		name       string
		input      string
		wantState  pomodoro.State
		wantOutput []string
	}{
		{
			name:      "start and pause",
			input:     "s\ns\np\np\nq\n",
			wantState: pomodoro.StatePaused,
			wantOutput: []string{
				"Pomodoro de 25:00",
				"▶ Iniciado: 25:00 (término previsto às 14:25)",
				"O timer já está rodando.",
				"⏸ Pausado em 25:00",
				"O timer não está rodando.",
			},
		},
		{
			name:      "change duration and reset",
			input:     "t 5\nr\n",
			wantState: pomodoro.StateIdle,
			wantOutput: []string{
				"↺ Reiniciado: 05:00",
			},
		},
		{
			name:      "invalid commands",
			input:     "\nt\nt x\nt 0\nz\n",
			wantState: pomodoro.StateIdle,
			wantOutput: []string{
				"Uso: t <minutos>",
				"Minutos inválidos: x",
				"Duração inválida:",
				`Comando desconhecido "z"`,
			},
		},
	}

	disableColor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := newStoppedTimer(t, pomodoro.DefaultDuration)
			var out bytes.Buffer

			require.NoError(t, runPomodoro(timer, strings.NewReader(tt.input), &out, now))
			for _, w := range tt.wantOutput {
				assert.Contains(t, out.String(), w)
			}
			assert.Equal(t, tt.wantState, timer.State())
		})
	}
}

func TestRunPomodoro_ClosesTimerAfterQuit(t *testing.T) {
	timer := newStoppedTimer(t, time.Minute)
	require.NoError(t, runPomodoro(timer, strings.NewReader("q\ns\n"), &bytes.Buffer{}, time.Now))
	assert.False(t, timer.Start())
}

func TestRenderEvent(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 5, 1, 9, 50, 0, 0, time.Local) }
	tests := []struct {
		event pomodoro.Event
		want  string
	}{
		{event: pomodoro.Event{Kind: pomodoro.EventStarted, Remaining: 25 * time.Minute}, want: "▶ Iniciado: 25:00 (término previsto às 10:15)\n"},
		{event: pomodoro.Event{Kind: pomodoro.EventTick, Remaining: 90 * time.Second}, want: "\r⏱ 01:30"},
		{event: pomodoro.Event{Kind: pomodoro.EventPaused, Remaining: time.Minute}, want: "\n⏸ Pausado em 01:00\n"},
		{event: pomodoro.Event{Kind: pomodoro.EventReset, Remaining: time.Minute}, want: "\n↺ Reiniciado: 01:00\n"},
		{event: pomodoro.Event{Kind: pomodoro.EventCompleted}, want: "\n✔ Pomodoro concluído! Hora de uma pausa.\n"},
	}
	disableColor(t)
	for _, tt := range tests {
		t.Run(string(tt.event.Kind), func(t *testing.T) {
			var out bytes.Buffer
			renderEvent(&out, tt.event, now)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPomodoroCommand_DurationFromSettings(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)

	_, err := runCommand(t, cfgPath, "", "settings", "set", "pomodoro_duration", "50")
	require.NoError(t, err)

	out, err := runCommand(t, cfgPath, "q\n", "pomodoro")
	require.NoError(t, err)
	assert.Contains(t, out, "Pomodoro de 50:00")

	out, err = runCommand(t, cfgPath, "", "pomodoro", "--minutes", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "Pomodoro de 15:00")

	s, err := settings.Load(filepath.Join(tmpDir, "data", settings.FileName))
	require.NoError(t, err)
	assert.Equal(t, 50, s.PomodoroDuration)
}
