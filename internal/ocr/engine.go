// Package ocr recognizes text in rendered page images.
package ocr

import (
	"context"
	"errors"
	"image"
)

// ErrUnavailable is returned when no OCR engine can run on this machine.
var ErrUnavailable = errors.New("ocr engine unavailable")

//go:generate mockgen -source=engine.go -destination=../mocks/ocr/mock_engine.go -package=mock_ocr

// Engine recognizes text in an image.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}
