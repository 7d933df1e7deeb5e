package export

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/estudazilla/internal/export/docx"
	"github.com/at-ishikawa/estudazilla/internal/pdf"
)

type contentData struct {
	Title     string
	Structure *pdf.Structure
}

// ContentText renders a structure in the plain text layout.
func ContentText(s *pdf.Structure) string {
	var b strings.Builder
	for _, chapter := range s.Chapters {
		fmt.Fprintf(&b, "CAPÍTULO: %s\n\n", chapter.Title)
		for _, theme := range chapter.Themes {
			fmt.Fprintf(&b, "TEMA: %s\n", theme.Title)
			for _, subtheme := range theme.Subthemes {
				fmt.Fprintf(&b, "Subtema: %s\n", subtheme.Title)
				for _, block := range subtheme.Blocks {
					fmt.Fprintf(&b, "Página %d:\n%s\n\n", block.Page, block.Text)
				}
			}
		}
	}
	return b.String()
}

// ContentDocument lays a structure out as headings and paragraphs.
func ContentDocument(s *pdf.Structure) *docx.Document {
	doc := docx.New()
	for _, chapter := range s.Chapters {
		doc.AddHeading("CAPÍTULO: "+chapter.Title, 1)
		for _, theme := range chapter.Themes {
			doc.AddHeading("TEMA: "+theme.Title, 2)
			for _, subtheme := range theme.Subthemes {
				doc.AddHeading("Subtema: "+subtheme.Title, 3)
				for _, block := range subtheme.Blocks {
					doc.AddParagraph(fmt.Sprintf("Página %d:", block.Page))
					doc.AddParagraph(block.Text)
					doc.AddParagraph("")
				}
			}
		}
	}
	return doc
}

// ExportContent writes a document structure in format and returns the written path.
func (e *Exporter) ExportContent(title string, s *pdf.Structure, format Format) (string, error) {
	path, err := e.prepare(title, format)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatTXT:
		return writeFile(path, []byte(ContentText(s)))
	case FormatDOCX:
		if err := ContentDocument(s).Save(path); err != nil {
			return "", fmt.Errorf("doc.Save() > %w", err)
		}
		return path, nil
	case FormatMarkdown, FormatPDF, FormatHTML:
		md, err := e.renderContentMarkdown(contentData{Title: title, Structure: s})
		if err != nil {
			return "", err
		}
		return writeMarkdown(path, title, md, format)
	}
	return "", fmt.Errorf("content as %s: %w", format, ErrUnsupportedFormat)
}

// ExportText writes free text, such as a summary, in format.
func (e *Exporter) ExportText(name, text string, format Format) (string, error) {
	path, err := e.prepare(name, format)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatTXT:
		return writeFile(path, []byte(text))
	case FormatDOCX:
		doc := docx.New()
		doc.AddParagraph(text)
		if err := doc.Save(path); err != nil {
			return "", fmt.Errorf("doc.Save() > %w", err)
		}
		return path, nil
	case FormatMarkdown, FormatPDF, FormatHTML:
		return writeMarkdown(path, name, []byte(text), format)
	}
	return "", fmt.Errorf("text as %s: %w", format, ErrUnsupportedFormat)
}

func writeMarkdown(path, title string, md []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return MarkdownToPDF(md, path)
	case FormatHTML:
		page, err := MarkdownToHTML(title, md)
		if err != nil {
			return "", err
		}
		return writeFile(path, page)
	default:
		return writeFile(path, md)
	}
}
