// Package export writes study content, quizzes and flashcards to text, markdown, PDF, HTML and DOCX files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/at-ishikawa/estudazilla/internal/assets"
	"github.com/at-ishikawa/estudazilla/internal/config"
)

// ErrUnsupportedFormat is returned when an export cannot be written in the requested format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Exporter writes exports into a directory.
type Exporter struct {
	dir             string
	contentTemplate string
	quizTemplate    string
}

// NewExporter creates an exporter writing into cfg.Directory, or the working directory when empty.
func NewExporter(cfg config.ExportsConfig) *Exporter {
	return &Exporter{
		dir:             cfg.Directory,
		contentTemplate: cfg.MarkdownTemplate,
		quizTemplate:    cfg.QuizTemplate,
	}
}

// Dir returns the directory exports are written to.
func (e *Exporter) Dir() string {
	return e.dir
}

// Path returns where an export named name in format is written.
func (e *Exporter) Path(name string, format Format) string {
	return filepath.Join(e.dir, FileName(name)+"."+string(format))
}

// FileName turns a title into a file name without extension.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "export"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsSpace(r):
			return '_'
		default:
			return r
		}
	}, name)
}

func (e *Exporter) prepare(name string, format Format) (string, error) {
	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0755); err != nil {
			return "", fmt.Errorf("os.MkdirAll(%s) > %w", e.dir, err)
		}
	}
	return e.Path(name, format), nil
}

func writeFile(path string, content []byte) (string, error) {
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

func execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("tmpl.Execute(%s) > %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) renderContentMarkdown(data any) ([]byte, error) {
	tmpl, err := assets.ParseContentTemplate(e.contentTemplate)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseContentTemplate() > %w", err)
	}
	return execute(tmpl, data)
}

func (e *Exporter) renderQuizMarkdown(data any) ([]byte, error) {
	tmpl, err := assets.ParseQuizTemplate(e.quizTemplate)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseQuizTemplate() > %w", err)
	}
	return execute(tmpl, data)
}
