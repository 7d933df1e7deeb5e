package notes

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/estudazilla/internal/export/docx"
)

const (
	tagsLabel = "Tags:"
	typeLabel = "Tipo:"
)

// ExportDOCX writes notes to a Word document, one note per page.
func ExportDOCX(notes []Note, path string) error {
	doc := docx.New()
	for i, n := range notes {
		if i > 0 {
			doc.AddPageBreak()
		}
		doc.AddHeading(n.Title, 1)
		doc.AddParagraph(tagsLabel + " " + strings.Join(n.Tags, ", "))
		doc.AddParagraph(typeLabel + " " + n.Type)
		doc.AddParagraph(n.Content)
	}
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("doc.Save(%s) > %w", path, err)
	}
	return nil
}

// ImportDOCX reads notes written by ExportDOCX. Each level one heading starts a note;
// the paragraphs after the tags and type lines form its content.
// The returned inputs are not validated.
func ImportDOCX(path string) ([]Input, error) {
	paragraphs, err := docx.Read(path)
	if err != nil {
		return nil, fmt.Errorf("docx.Read(%s) > %w", path, err)
	}

	var (
		inputs  []Input
		current *Input
		content []string
		field   int
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(content, "\n")
		inputs = append(inputs, *current)
	}
	for _, p := range paragraphs {
		if p.PageBreak {
			continue
		}
		if p.Style == docx.StyleHeading1 {
			flush()
			current = &Input{Title: p.Text}
			content = nil
			field = 0
			continue
		}
		if current == nil {
			continue
		}
		switch {
		case field == 0 && strings.HasPrefix(p.Text, tagsLabel):
			current.Tags = ParseTags(strings.TrimPrefix(p.Text, tagsLabel))
			field = 1
		case field <= 1 && strings.HasPrefix(p.Text, typeLabel):
			current.Type = strings.TrimSpace(strings.TrimPrefix(p.Text, typeLabel))
			field = 2
		default:
			field = 2
			content = append(content, p.Text)
		}
	}
	flush()
	return inputs, nil
}

// Import adds every note of the Word document at path and returns the stored notes.
func (s *Store) Import(path string) ([]Note, error) {
	inputs, err := ImportDOCX(path)
	if err != nil {
		return nil, err
	}
	imported := make([]Note, 0, len(inputs))
	for _, in := range inputs {
		n, err := s.Add(in)
		if err != nil {
			return imported, fmt.Errorf("s.Add(%q) > %w", in.Title, err)
		}
		imported = append(imported, *n)
	}
	return imported, nil
}
