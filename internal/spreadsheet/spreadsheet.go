// Package spreadsheet generates blank Excel workbooks from header templates.
package spreadsheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the worksheet that receives the headers.
	SheetName = "Sheet1"
	// Custom is the template without predefined headers.
	Custom = "Personalizado"

	extension  = ".xlsx"
	namePrefix = "controle_"
)

var (
	ErrFileExists  = errors.New("file already exists")
	ErrNoHeaders   = errors.New("at least one header is required")
	ErrNoDirectory = errors.New("output directory is required")
	ErrUnknownType = errors.New("unknown spreadsheet type")
)

// Template is a named set of column headers.
type Template struct {
	Name    string
	Headers []string
}

var templates = []Template{
	{Name: "Controle de Estoque", Headers: []string{"Item", "Quantidade", "Localização", "Fornecedor", "Última Atualização"}},
	{Name: "Planejamento Financeiro", Headers: []string{"Categoria", "Orçamento", "Gasto", "Saldo", "Período"}},
	{Name: "Controle de Tarefas", Headers: []string{"Tarefa", "Responsável", "Prazo", "Status", "Prioridade"}},
	{Name: "Registro de Estudos", Headers: []string{"Tópico", "Data", "Horas", "Status", "Notas"}},
	{Name: "Controle de Produção", Headers: []string{"Produto", "Quantidade", "Data Início", "Data Fim", "Status"}},
	{Name: Custom},
}

// Templates returns the available templates in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	for i, t := range templates {
		out[i] = Template{Name: t.Name, Headers: append([]string(nil), t.Headers...)}
	}
	return out
}

// HeadersFor returns a copy of the headers of the named template. Matching ignores case.
func HeadersFor(name string) ([]string, error) {
	for _, t := range templates {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return append([]string(nil), t.Headers...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// DefaultName returns the file name suggested for a template, without extension.
func DefaultName(templateName string) string {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(templateName)), " ", "_")
	if strings.HasPrefix(name, namePrefix) {
		return name
	}
	return namePrefix + name
}

// Request describes a workbook to generate.
type Request struct {
	// Type is a template name. Headers, when set, replace the template headers.
	Type    string
	Name    string
	Headers []string
	// InitialRows are blank, bordered rows reserved below the header.
	InitialRows int
	Dir         string
	Overwrite   bool
}

// Generate writes the workbook described by req and returns its path.
func Generate(req Request) (string, error) {
	headers := cleanHeaders(req.Headers)
	if len(headers) == 0 && req.Type != "" {
		templateHeaders, err := HeadersFor(req.Type)
		if err != nil {
			return "", err
		}
		headers = templateHeaders
	}
	if len(headers) == 0 {
		return "", ErrNoHeaders
	}
	dir := strings.TrimSpace(req.Dir)
	if dir == "" {
		return "", ErrNoDirectory
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultName(req.Type)
	}
	if !strings.HasSuffix(name, extension) {
		name += extension
	}
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil && !req.Overwrite {
		return "", fmt.Errorf("%w: %s", ErrFileExists, path)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	if err := write(path, headers, req.InitialRows); err != nil {
		return "", err
	}
	return path, nil
}

func write(path string, headers []string, initialRows int) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &row); err != nil {
		return fmt.Errorf("f.SetSheetRow() > %w", err)
	}

	lastColumn, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("excelize.ColumnNumberToName(%d) > %w", len(headers), err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("f.NewStyle(header) > %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastColumn+"1", headerStyle); err != nil {
		return fmt.Errorf("f.SetCellStyle(header) > %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastColumn, 20); err != nil {
		return fmt.Errorf("f.SetColWidth() > %w", err)
	}

	if initialRows > 0 {
		border := []excelize.Border{
			{Type: "left", Color: "BFBFBF", Style: 1},
			{Type: "right", Color: "BFBFBF", Style: 1},
			{Type: "top", Color: "BFBFBF", Style: 1},
			{Type: "bottom", Color: "BFBFBF", Style: 1},
		}
		rowStyle, err := f.NewStyle(&excelize.Style{Border: border})
		if err != nil {
			return fmt.Errorf("f.NewStyle(rows) > %w", err)
		}
		end := fmt.Sprintf("%s%d", lastColumn, initialRows+1)
		if err := f.SetCellStyle(SheetName, "A2", end, rowStyle); err != nil {
			return fmt.Errorf("f.SetCellStyle(rows) > %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("f.SaveAs(%s) > %w", path, err)
	}
	return nil
}

// ReadHeaders returns the header row of a generated workbook.
func ReadHeaders(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", SheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func cleanHeaders(headers []string) []string {
	var out []string
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
