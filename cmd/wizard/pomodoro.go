package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/pomodoro"
)

const pomodoroHelp = "Comandos: s = iniciar, p = pausar, r = reiniciar, t <minutos> = duração, q = sair"

func newPomodoroCommand() *cobra.Command {
	var minutes int
	command := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run an interactive pomodoro timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes <= 0 {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				s, _, err := loadSettings(cfg)
				if err != nil {
					return err
				}
				minutes = s.PomodoroDuration
			}
			timer, err := pomodoro.New(time.Duration(minutes) * time.Minute)
			if err != nil {
				return err
			}
			return runPomodoro(timer, cmd.InOrStdin(), cmd.OutOrStdout(), time.Now)
		},
	}
	command.Flags().IntVar(&minutes, "minutes", 0, "duration in minutes, the pomodoro_duration setting when zero")
	return command
}

// lockedWriter serializes writes from the input loop and the event renderer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// runPomodoro reads one command per line until "q" or the end of input, then closes the timer.
func runPomodoro(timer *pomodoro.Timer, in io.Reader, w io.Writer, now func() time.Time) error {
	out := &lockedWriter{w: w}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range timer.Events() {
			renderEvent(out, ev, now)
		}
	}()
	defer func() {
		timer.Close()
		<-done
	}()

	fmt.Fprintf(out, "Pomodoro de %s\n%s\n", pomodoro.Format(timer.Duration()), pomodoroHelp)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "s":
			if !timer.Start() {
				fmt.Fprintln(out, "O timer já está rodando.")
			}
		case "p":
			if !timer.Pause() {
				fmt.Fprintln(out, "O timer não está rodando.")
			}
		case "r":
			timer.Reset()
		case "t":
			if len(fields) != 2 {
				fmt.Fprintln(out, "Uso: t <minutos>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(out, "Minutos inválidos: %s\n", fields[1])
				continue
			}
			if err := timer.SetDuration(time.Duration(n) * time.Minute); err != nil {
				fmt.Fprintf(out, "Duração inválida: %v\n", err)
			}
		case "q":
			return nil
		default:
			fmt.Fprintf(out, "Comando desconhecido %q. %s\n", fields[0], pomodoroHelp)
		}
	}
	return scanner.Err()
}

func renderEvent(w io.Writer, ev pomodoro.Event, now func() time.Time) {
	remaining := pomodoro.Format(ev.Remaining)
	switch ev.Kind {
	case pomodoro.EventStarted:
		end := now().Add(ev.Remaining).Format("15:04")
		color.New(color.FgGreen).Fprintf(w, "▶ Iniciado: %s (término previsto às %s)\n", remaining, end)
	case pomodoro.EventTick:
		fmt.Fprintf(w, "\r⏱ %s", remaining)
	case pomodoro.EventPaused:
		color.New(color.FgYellow).Fprintf(w, "\n⏸ Pausado em %s\n", remaining)
	case pomodoro.EventReset:
		fmt.Fprintf(w, "\n↺ Reiniciado: %s\n", remaining)
	case pomodoro.EventCompleted:
		color.New(color.Bold, color.FgRed).Fprintln(w, "\n✔ Pomodoro concluído! Hora de uma pausa.")
	}
}
