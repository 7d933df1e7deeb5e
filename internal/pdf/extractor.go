package pdf

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

//go:generate mockgen -source=extractor.go -destination=../mocks/pdf/mock_extractor.go -package=mock_pdf

// Extractor opens PDF documents for page-level text and image access.
type Extractor interface {
	Open(path string) (Document, error)
}

// Document gives zero-indexed page access to an opened PDF.
type Document interface {
	NumPage() int
	Text(page int) (string, error)
	Image(page int) (image.Image, error)
	Close() error
}

// FitzExtractor reads PDFs with MuPDF.
type FitzExtractor struct {
	dpi float64
}

// NewFitzExtractor creates an extractor that renders page images at dpi.
func NewFitzExtractor(dpi float64) *FitzExtractor {
	if dpi <= 0 {
		dpi = 150
	}
	return &FitzExtractor{dpi: dpi}
}

func (e *FitzExtractor) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("fitz.New(%s) > %w", path, err)
	}
	return &fitzDocument{doc: doc, dpi: e.dpi}, nil
}

type fitzDocument struct {
	doc *fitz.Document
	dpi float64
}

func (d *fitzDocument) NumPage() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) Text(page int) (string, error) {
	return d.doc.Text(page)
}

func (d *fitzDocument) Image(page int) (image.Image, error) {
	img, err := d.doc.ImageDPI(page, d.dpi)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
