package ocr

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/estudazilla/internal/config"
)

func twoToneImage(w, h int, dark, light uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetGray(x, y, color.Gray{Y: dark})
			} else {
				img.SetGray(x, y, color.Gray{Y: light})
			}
		}
	}
	return img
}

func TestOtsuThreshold(t *testing.T) {
	tests := []struct {
		name    string
		img     *image.Gray
		wantMin uint8
		wantMax uint8
	}{
		{
			name:    "two tone image splits between the tones",
			img:     twoToneImage(10, 10, 40, 200),
			wantMin: 40,
			wantMax: 199,
		},
		{
			name:    "uniform image",
			img:     twoToneImage(10, 10, 128, 128),
			wantMin: 0,
			wantMax: 0,
		},
		{
			name:    "empty image",
			img:     image.NewGray(image.Rect(0, 0, 0, 0)),
			wantMin: 0,
			wantMax: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OtsuThreshold(tt.img)
			assert.GreaterOrEqual(t, got, tt.wantMin)
			assert.LessOrEqual(t, got, tt.wantMax)
		})
	}
}

func TestPreprocess(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 15, 15))
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			if x < 10 {
				src.Set(x, y, color.RGBA{R: 20, G: 30, B: 25, A: 255})
			} else {
				src.Set(x, y, color.RGBA{R: 230, G: 240, B: 220, A: 255})
			}
		}
	}

	got := Preprocess(src)
	require.Equal(t, image.Rect(0, 0, 10, 10), got.Bounds())
	for _, v := range got.Pix {
		assert.True(t, v == 0 || v == 255, "pixel %d is not binary", v)
	}
	assert.Equal(t, uint8(0), got.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), got.GrayAt(9, 9).Y)
}

func TestDownscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))

	got := downscale(src, 50)
	assert.Equal(t, image.Rect(0, 0, 50, 25), got.Bounds())

	same := downscale(src, 400)
	assert.Same(t, src, same)
}

func TestTesseract_Recognize_Unavailable(t *testing.T) {
	engine := NewTesseract(config.OCRConfig{
		Binary:               "estudazilla-no-such-tesseract",
		Language:             "por",
		PageSegmentationMode: 6,
		EngineMode:           3,
	}, nil)

	assert.False(t, engine.Available())
	_, err := engine.Recognize(context.Background(), twoToneImage(4, 4, 0, 255))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTesseract_args(t *testing.T) {
	engine := NewTesseract(config.OCRConfig{Language: "por", PageSegmentationMode: 6, EngineMode: 3}, nil)
	assert.Equal(t,
		[]string{"page.png", "stdout", "--oem", "3", "--psm", "6", "-l", "por"},
		engine.args("page.png"),
	)
}
