package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const (
	contentTemplateName    = "content.md.go.tmpl"
	quizTemplateName       = "quiz.md.go.tmpl"
	readmeTemplateName     = "README.md.go.tmpl"
	mainScriptTemplateName = "main.py.tmpl"
)

//go:embed templates/content.md.go.tmpl
var fallbackContentTemplate string

//go:embed templates/quiz.md.go.tmpl
var fallbackQuizTemplate string

//go:embed templates/README.md.go.tmpl
var fallbackReadmeTemplate string

//go:embed templates/main.py.tmpl
var fallbackMainScriptTemplate string

// ParseContentTemplate returns the markdown template for document content.
// Its data has a Title and a Structure.
func ParseContentTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, contentTemplateName, fallbackContentTemplate)
}

// ParseQuizTemplate returns the markdown template for quizzes. Its data has Questions.
func ParseQuizTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, quizTemplateName, fallbackQuizTemplate)
}

// ParseReadmeTemplate returns the README template of new projects.
func ParseReadmeTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, readmeTemplateName, fallbackReadmeTemplate)
}

// ParseMainScriptTemplate returns the template of the main script of new projects.
func ParseMainScriptTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, mainScriptTemplateName, fallbackMainScriptTemplate)
}

var funcMap = template.FuncMap{
	"join":      strings.Join,
	"add1":      func(i int) int { return i + 1 },
	"letter":    Letter,
	"answerKey": AnswerKey,
}

// Letter returns the option label for index i: a, b, c, ...
func Letter(i int) string {
	return string(rune('a' + i))
}

// AnswerKey prefixes answer with its option letter when it is one of options.
func AnswerKey(options []string, answer string) string {
	for i, o := range options {
		if o == answer {
			return Letter(i) + ") " + answer
		}
	}
	return answer
}

func parseTemplateWithFallback(templatePath, embeddedName, fallbackTemplate string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(embeddedName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
