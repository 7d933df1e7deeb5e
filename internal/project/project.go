// Package project scaffolds project directories and keeps their creation history.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/at-ishikawa/estudazilla/internal/assets"
	"github.com/at-ishikawa/estudazilla/internal/jsonstore"
	"github.com/at-ishikawa/estudazilla/internal/spreadsheet"
)

// DefaultType is used when a request names no type.
const DefaultType = "Outro"

var (
	ErrInvalidName = errors.New("invalid project name")
	ErrNoBaseDir   = errors.New("base directory is required")
)

// Types are the project types offered to the user.
var Types = []string{"Logística", "IA", "Finanças", "Estudo", "Pesquisa", "Desenvolvimento", "Marketing", "Outro"}

// Directory is a folder created in every project.
type Directory struct {
	Name        string
	Description string
}

// Directories are created in this order.
var Directories = []Directory{
	{Name: "dados", Description: "Armazena arquivos de dados brutos"},
	{Name: "documentos", Description: "Documentação do projeto"},
	{Name: "relatorios", Description: "Relatórios e análises"},
	{Name: "planilhas", Description: "Arquivos Excel e planilhas"},
	{Name: "scripts", Description: "Scripts Python, Shell, etc."},
	{Name: "outputs", Description: "Resultados e saídas do projeto"},
}

// Project is a created project as recorded in the history.
type Project struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	Type      string         `json:"type"`
	CreatedAt jsonstore.Time `json:"created_at"`
}

// Request describes a project to create.
type Request struct {
	Name    string
	Type    string
	BaseDir string
	// README, MainScript and Spreadsheet select the starter files.
	README      bool
	MainScript  bool
	Spreadsheet bool
}

// Creator scaffolds projects and records them in the history.
type Creator struct {
	history    *History
	readme     *template.Template
	mainScript *template.Template
	now        func() time.Time
}

// NewCreator creates a creator using the embedded starter templates.
func NewCreator(history *History) (*Creator, error) {
	readme, err := assets.ParseReadmeTemplate("")
	if err != nil {
		return nil, fmt.Errorf("assets.ParseReadmeTemplate() > %w", err)
	}
	mainScript, err := assets.ParseMainScriptTemplate("")
	if err != nil {
		return nil, fmt.Errorf("assets.ParseMainScriptTemplate() > %w", err)
	}
	return &Creator{
		history:    history,
		readme:     readme,
		mainScript: mainScript,
		now:        time.Now,
	}, nil
}

// Create builds the project directory tree. When the directory already exists,
// the first free name among <name>_1, <name>_2, ... is used for both the path and the project.
func (c *Creator) Create(req Request) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, req.Name)
	}
	baseDir := strings.TrimSpace(req.BaseDir)
	if baseDir == "" {
		return nil, ErrNoBaseDir
	}
	projectType := strings.TrimSpace(req.Type)
	if projectType == "" {
		projectType = DefaultType
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", baseDir, err)
	}
	name, path, err := createUnique(baseDir, name)
	if err != nil {
		return nil, err
	}
	p := &Project{
		Name:      name,
		Path:      path,
		Type:      projectType,
		CreatedAt: jsonstore.NewTime(c.now()),
	}
	if err := c.populate(p, req); err != nil {
		// a half-built project would push the next attempt to a suffixed name
		if rmErr := os.RemoveAll(path); rmErr != nil {
			return nil, errors.Join(err, fmt.Errorf("os.RemoveAll(%s) > %w", path, rmErr))
		}
		return nil, err
	}
	return p, nil
}

func (c *Creator) populate(p *Project, req Request) error {
	path := p.Path
	for _, d := range Directories {
		dir := filepath.Join(path, d.Name)
		if err := os.Mkdir(dir, 0755); err != nil {
			return fmt.Errorf("os.Mkdir(%s) > %w", dir, err)
		}
	}

	if req.README {
		data := struct {
			Name        string
			Type        string
			CreatedAt   string
			Directories []Directory
		}{p.Name, p.Type, p.CreatedAt.String(), Directories}
		if err := render(c.readme, filepath.Join(path, "README.md"), data); err != nil {
			return err
		}
	}
	if req.MainScript {
		if err := render(c.mainScript, filepath.Join(path, "scripts", "main.py"), p); err != nil {
			return err
		}
	}
	if req.Spreadsheet {
		if _, err := spreadsheet.Generate(spreadsheet.Request{
			Name:      "controle_" + strings.ToLower(p.Type),
			Headers:   SpreadsheetHeaders(p.Type),
			Dir:       filepath.Join(path, "planilhas"),
			Overwrite: true,
		}); err != nil {
			return fmt.Errorf("spreadsheet.Generate() > %w", err)
		}
	}

	if c.history != nil {
		if err := c.history.Append(*p); err != nil {
			return fmt.Errorf("history.Append() > %w", err)
		}
	}
	return nil
}

// SpreadsheetHeaders returns the columns of the starter spreadsheet of a project type.
func SpreadsheetHeaders(projectType string) []string {
	switch projectType {
	case "Finanças":
		return []string{"Data", "Descrição", "Valor", "Categoria", "Status"}
	case "Estudo":
		return []string{"Tópico", "Data", "Horas", "Status", "Notas"}
	default:
		return []string{"Item", "Descrição", "Status", "Data", "Responsável"}
	}
}

func createUnique(baseDir, name string) (string, string, error) {
	candidate := name
	for i := 1; ; i++ {
		path := filepath.Join(baseDir, candidate)
		err := os.Mkdir(path, 0755)
		if err == nil {
			return candidate, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", fmt.Errorf("os.Mkdir(%s) > %w", path, err)
		}
		candidate = fmt.Sprintf("%s_%d", name, i)
	}
}

func render(tmpl *template.Template, path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	if err := tmpl.Execute(f, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("tmpl.Execute(%s) > %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("f.Close(%s) > %w", path, err)
	}
	return nil
}
