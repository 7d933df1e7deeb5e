package export

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/mandolyte/mdtopdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// MarkdownToPDF renders markdown content into a PDF at pdfPath.
func MarkdownToPDF(content []byte, pdfPath string) (string, error) {
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

// MarkdownFileToPDF converts a .md file into a PDF next to it.
func MarkdownFileToPDF(markdownPath string) (string, error) {
	if filepath.Ext(markdownPath) != ".md" {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}
	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}
	return MarkdownToPDF(content, markdownPath[:len(markdownPath)-len(".md")]+".pdf")
}

// MarkdownToHTML renders markdown content as a standalone HTML page.
func MarkdownToHTML(title string, content []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert(content, &body); err != nil {
		return nil, fmt.Errorf("markdown.Convert() > %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
	page.WriteString(html.EscapeString(title))
	page.WriteString("</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
