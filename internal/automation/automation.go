// Package automation launches applications, bookmarks and shell commands, and removes temporary files.
package automation

//go:generate mockgen -source=automation.go -destination=../mocks/automation/mock_automation.go -package=mock_automation

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/browser"
)

var (
	ErrUnknownApp   = errors.New("unknown application")
	ErrUnknownLink  = errors.New("unknown link")
	ErrEmptyCommand = errors.New("command is empty")
)

// DefaultTempExtensions are the suffixes removed by CleanTempFiles when none are given.
var DefaultTempExtensions = []string{".tmp", ".temp", ".bak", ".log", "~"}

// Runner starts processes without waiting for them.
type Runner interface {
	Start(name string, args ...string) error
}

// ExecRunner starts processes with os/exec.
type ExecRunner struct {
	logger *slog.Logger
}

func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{logger: logger}
}

// Start launches the process and reaps it in the background.
func (r *ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cmd.Start(%s) > %w", name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			r.logger.Debug("process exited with error", slog.String("command", name), slog.Any("error", err))
		}
	}()
	return nil
}

// App is a launchable application.
type App struct {
	Name    string
	Command []string
}

// Link is a bookmarked URL.
type Link struct {
	Name string
	URL  string
}

// AppsFor returns the application table of an operating system.
func AppsFor(goos string) []App {
	switch goos {
	case "windows":
		return []App{
			{Name: "VS Code", Command: []string{"cmd", "/C", "code"}},
			{Name: "Excel", Command: []string{"cmd", "/C", "start", "", "excel"}},
			{Name: "Navegador", Command: []string{"cmd", "/C", "start", "", "chrome"}},
			{Name: "Terminal", Command: []string{"cmd", "/C", "start", "", "cmd"}},
			{Name: "Explorador de Arquivos", Command: []string{"explorer"}},
		}
	case "darwin":
		return []App{
			{Name: "VS Code", Command: []string{"open", "-a", "Visual Studio Code"}},
			{Name: "Excel", Command: []string{"open", "-a", "Microsoft Excel"}},
			{Name: "Navegador", Command: []string{"open", "-a", "Google Chrome"}},
			{Name: "Terminal", Command: []string{"open", "-a", "Terminal"}},
			{Name: "Explorador de Arquivos", Command: []string{"open", "."}},
		}
	default:
		return []App{
			{Name: "VS Code", Command: []string{"code"}},
			{Name: "Excel", Command: []string{"libreoffice", "--calc"}},
			{Name: "Navegador", Command: []string{"google-chrome"}},
			{Name: "Terminal", Command: []string{"gnome-terminal"}},
			{Name: "Explorador de Arquivos", Command: []string{"nautilus"}},
		}
	}
}

// QuickLinks returns the bookmarked URLs.
func QuickLinks() []Link {
	return []Link{
		{Name: "ChatGPT", URL: "https://chat.openai.com"},
		{Name: "Google Drive", URL: "https://drive.google.com"},
		{Name: "Gmail", URL: "https://mail.google.com"},
		{Name: "GitHub", URL: "https://github.com"},
		{Name: "Instagram", URL: "https://instagram.com"},
	}
}

// Tools runs the automation actions.
type Tools struct {
	runner  Runner
	openURL func(url string) error
	goos    string
	apps    []App
	links   []Link
}

// NewTools creates tools for the current operating system that open links in the default browser.
func NewTools(runner Runner) *Tools {
	return newTools(runner, browser.OpenURL, runtime.GOOS)
}

func newTools(runner Runner, openURL func(string) error, goos string) *Tools {
	return &Tools{
		runner:  runner,
		openURL: openURL,
		goos:    goos,
		apps:    AppsFor(goos),
		links:   QuickLinks(),
	}
}

func (t *Tools) Apps() []App {
	return t.apps
}

func (t *Tools) Links() []Link {
	return t.links
}

// OpenApp launches the application named name. Matching ignores case.
func (t *Tools) OpenApp(name string) error {
	for _, app := range t.apps {
		if strings.EqualFold(app.Name, strings.TrimSpace(name)) {
			if err := t.runner.Start(app.Command[0], app.Command[1:]...); err != nil {
				return fmt.Errorf("failed to open %s: %w", app.Name, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownApp, name)
}

// OpenLink opens the bookmark named name in the browser. Matching ignores case.
func (t *Tools) OpenLink(name string) error {
	for _, link := range t.links {
		if strings.EqualFold(link.Name, strings.TrimSpace(name)) {
			if err := t.openURL(link.URL); err != nil {
				return fmt.Errorf("failed to open %s: %w", link.Name, err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownLink, name)
}

// RunCommand passes command unmodified to the OS shell and returns once it started.
func (t *Tools) RunCommand(command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return ErrEmptyCommand
	}
	var err error
	if t.goos == "windows" {
		err = t.runner.Start("cmd", "/C", command)
	} else {
		err = t.runner.Start("sh", "-c", command)
	}
	if err != nil {
		return fmt.Errorf("failed to run command: %w", err)
	}
	return nil
}

// CleanTempFiles removes the files under dir whose names end with one of exts, ignoring case.
// DefaultTempExtensions are used when exts is empty. The removed paths are returned sorted.
func CleanTempFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultTempExtensions
	}
	suffixes := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if ext != "~" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		suffixes = append(suffixes, ext)
	}

	var removed []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasAnySuffix(strings.ToLower(d.Name()), suffixes) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("os.Remove(%s) > %w", path, err)
		}
		removed = append(removed, path)
		return nil
	})
	sort.Strings(removed)
	if err != nil {
		return removed, fmt.Errorf("filepath.WalkDir(%s) > %w", dir, err)
	}
	return removed, nil
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
