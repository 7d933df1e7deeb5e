// Package docx writes and reads minimal word-processor documents made of headings, paragraphs and page breaks.
package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
)

const (
	StyleTitle    = "Title"
	StyleHeading1 = "Heading1"
	StyleHeading2 = "Heading2"
	StyleHeading3 = "Heading3"
	StyleList     = "ListBullet"
)

// ErrInvalidDocument is returned when a file is not a readable document.
var ErrInvalidDocument = errors.New("invalid docx document")

// Paragraph is one paragraph of a document. An empty Style is a normal paragraph.
type Paragraph struct {
	Style     string
	Text      string
	PageBreak bool
}

// Level returns the heading level of the paragraph, 0 for the title and -1 for body text.
func (p Paragraph) Level() int {
	switch p.Style {
	case StyleTitle:
		return 0
	case StyleHeading1:
		return 1
	case StyleHeading2:
		return 2
	case StyleHeading3:
		return 3
	default:
		return -1
	}
}

// Document accumulates paragraphs in order.
type Document struct {
	paragraphs []Paragraph
}

func New() *Document {
	return &Document{}
}

// AddHeading adds a heading. Level 0 is the document title; levels above 3 are written as level 3.
func (d *Document) AddHeading(text string, level int) {
	style := StyleHeading3
	switch {
	case level <= 0:
		style = StyleTitle
	case level == 1:
		style = StyleHeading1
	case level == 2:
		style = StyleHeading2
	}
	d.paragraphs = append(d.paragraphs, Paragraph{Style: style, Text: text})
}

// AddParagraph adds body text. Line breaks inside text are kept as line breaks within the paragraph.
func (d *Document) AddParagraph(text string) {
	d.paragraphs = append(d.paragraphs, Paragraph{Text: text})
}

// AddListItem adds a bulleted paragraph.
func (d *Document) AddListItem(text string) {
	d.paragraphs = append(d.paragraphs, Paragraph{Style: StyleList, Text: text})
}

func (d *Document) AddPageBreak() {
	d.paragraphs = append(d.paragraphs, Paragraph{PageBreak: true})
}

// Paragraphs returns the paragraphs added so far.
func (d *Document) Paragraphs() []Paragraph {
	return d.paragraphs
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	if err := d.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("f.Close() > %w", err)
	}
	return nil
}

// Write writes the document package to w.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	parts := []struct {
		name    string
		content []byte
	}{
		{name: "[Content_Types].xml", content: []byte(contentTypesXML)},
		{name: "_rels/.rels", content: []byte(relsXML)},
		{name: "word/_rels/document.xml.rels", content: []byte(documentRelsXML)},
		{name: "word/styles.xml", content: []byte(stylesXML)},
		{name: "word/document.xml", content: d.documentXML()},
	}
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("zw.Create(%s) > %w", part.name, err)
		}
		if _, err := fw.Write(part.content); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zw.Close() > %w", err)
	}
	return nil
}

func (d *Document) documentXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<w:document xmlns:w="` + wordNamespace + `"><w:body>`)
	for _, p := range d.paragraphs {
		buf.WriteString("<w:p>")
		if p.PageBreak {
			buf.WriteString(`<w:r><w:br w:type="page"/></w:r></w:p>`)
			continue
		}
		if p.Style != "" {
			buf.WriteString(`<w:pPr><w:pStyle w:val="` + p.Style + `"/></w:pPr>`)
		}
		if p.Text != "" {
			buf.WriteString("<w:r>")
			for i, line := range strings.Split(p.Text, "\n") {
				if i > 0 {
					buf.WriteString("<w:br/>")
				}
				writeText(&buf, line)
			}
			buf.WriteString("</w:r>")
		}
		buf.WriteString("</w:p>")
	}
	buf.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`)
	return buf.Bytes()
}

// writeText writes line as text runs, turning tabs into tab elements.
func writeText(buf *bytes.Buffer, line string) {
	for i, segment := range strings.Split(line, "\t") {
		if i > 0 {
			buf.WriteString("<w:tab/>")
		}
		if segment == "" {
			continue
		}
		buf.WriteString(`<w:t xml:space="preserve">`)
		// EscapeText only fails when the writer does
		_ = xml.EscapeText(buf, []byte(segment))
		buf.WriteString("</w:t>")
	}
}

// Read returns the paragraphs of the document at path.
func Read(path string) ([]Paragraph, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("zip.OpenReader(%s) > %w: %w", path, ErrInvalidDocument, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("f.Open(%s) > %w", f.Name, err)
		}
		defer rc.Close()
		return parseDocument(rc)
	}
	return nil, fmt.Errorf("%s has no word/document.xml: %w", path, ErrInvalidDocument)
}

func parseDocument(r io.Reader) ([]Paragraph, error) {
	decoder := xml.NewDecoder(r)
	var (
		paragraphs []Paragraph
		current    *Paragraph
		text       strings.Builder
		inText     bool
	)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoder.Token() > %w: %w", ErrInvalidDocument, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				current = &Paragraph{}
				text.Reset()
			case "pStyle":
				if current != nil {
					current.Style = attr(t, "val")
				}
			case "t":
				inText = true
			case "tab":
				if current != nil {
					text.WriteByte('\t')
				}
			case "br":
				if current == nil {
					continue
				}
				if attr(t, "type") == "page" {
					current.PageBreak = true
				} else {
					text.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if current != nil {
					current.Text = text.String()
					paragraphs = append(paragraphs, *current)
					current = nil
				}
			}
		case xml.CharData:
			if inText && current != nil {
				text.Write(t)
			}
		}
	}
	return paragraphs, nil
}

func attr(e xml.StartElement, local string) string {
	for _, a := range e.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
