package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/estudazilla/internal/ocr"
)

// Result is the outcome of processing one PDF.
type Result struct {
	Pages     int
	OCRPages  []int
	Blocks    []Block
	Structure *Structure
}

// Processor turns a PDF into section-tagged text blocks, one per page with text.
type Processor struct {
	extractor Extractor
	ocr       ocr.Engine
	logger    *slog.Logger
}

// NewProcessor creates a processor. engine may be nil, in which case pages without text are skipped.
func NewProcessor(extractor Extractor, engine ocr.Engine, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		extractor: extractor,
		ocr:       engine,
		logger:    logger,
	}
}

// Process extracts every page in order. Pages whose extracted text is blank are
// rendered and passed through OCR; pages still blank afterwards produce no block.
func (p *Processor) Process(ctx context.Context, path string) (*Result, error) {
	p.logger.Info("processing PDF", slog.String("path", path))

	doc, err := p.extractor.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	engine := p.ocr
	tagger := NewSectionTagger()
	result := &Result{Pages: doc.NumPage()}

	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pageNum := i + 1

		text, err := doc.Text(i)
		if err != nil {
			p.logger.Warn("failed to extract text", slog.Int("page", pageNum), slog.Any("error", err))
			text = ""
		}

		if strings.TrimSpace(text) == "" && engine != nil {
			var ok bool
			text, ok = p.recognizePage(ctx, engine, doc, i)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !ok {
				engine = nil
			}
			if strings.TrimSpace(text) != "" {
				result.OCRPages = append(result.OCRPages, pageNum)
			}
		}

		if strings.TrimSpace(text) == "" {
			p.logger.Debug("skipping blank page", slog.Int("page", pageNum))
			continue
		}
		result.Blocks = append(result.Blocks, tagger.Tag(pageNum, text))
	}

	result.Structure = FromBlocks(result.Blocks)
	p.logger.Info("processed PDF",
		slog.String("path", path),
		slog.Int("pages", result.Pages),
		slog.Int("blocks", len(result.Blocks)),
		slog.Int("ocrPages", len(result.OCRPages)),
	)
	return result, nil
}

// recognizePage returns the OCR text of page i. OCR failures degrade to an empty string;
// ok is false only when the engine cannot run at all.
func (p *Processor) recognizePage(ctx context.Context, engine ocr.Engine, doc Document, i int) (text string, ok bool) {
	img, err := doc.Image(i)
	if err != nil {
		p.logger.Warn("failed to render page", slog.Int("page", i+1), slog.Any("error", err))
		return "", true
	}
	text, err = engine.Recognize(ctx, img)
	if errors.Is(err, ocr.ErrUnavailable) {
		p.logger.Warn("OCR engine is not available, pages without text will be skipped", slog.Any("error", err))
		return "", false
	}
	if err != nil {
		p.logger.Warn("OCR failed", slog.Int("page", i+1), slog.Any("error", err))
		return "", true
	}
	return text, true
}
