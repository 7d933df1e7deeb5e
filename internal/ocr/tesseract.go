package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/at-ishikawa/estudazilla/internal/config"
)

// Tesseract runs the tesseract command line tool on preprocessed page images.
type Tesseract struct {
	binary   string
	language string
	psm      int
	oem      int
	timeout  time.Duration
	logger   *slog.Logger

	lookOnce sync.Once
	path     string
	lookErr  error
}

// NewTesseract creates an engine from the OCR configuration.
func NewTesseract(cfg config.OCRConfig, logger *slog.Logger) *Tesseract {
	if logger == nil {
		logger = slog.Default()
	}
	binary := cfg.Binary
	if binary == "" {
		binary = "tesseract"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Tesseract{
		binary:   binary,
		language: cfg.Language,
		psm:      cfg.PageSegmentationMode,
		oem:      cfg.EngineMode,
		timeout:  timeout,
		logger:   logger.With("engine", "tesseract"),
	}
}

// Available reports whether the tesseract binary can be found.
func (t *Tesseract) Available() bool {
	_, err := t.lookPath()
	return err == nil
}

func (t *Tesseract) lookPath() (string, error) {
	t.lookOnce.Do(func() {
		t.path, t.lookErr = exec.LookPath(t.binary)
	})
	return t.path, t.lookErr
}

// Recognize thresholds img and returns the text tesseract reads from it.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	path, err := t.lookPath()
	if err != nil {
		return "", fmt.Errorf("%w: %s not found in PATH: %v", ErrUnavailable, t.binary, err)
	}

	f, err := os.CreateTemp("", "estudazilla-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("os.CreateTemp() > %w", err)
	}
	defer os.Remove(f.Name())

	if err := png.Encode(f, Preprocess(img)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("png.Encode() > %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", f.Name(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, t.args(f.Name())...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	t.logger.Debug("recognized page image", slog.Int("chars", stdout.Len()))
	return stdout.String(), nil
}

func (t *Tesseract) args(imagePath string) []string {
	args := []string{imagePath, "stdout",
		"--oem", strconv.Itoa(t.oem),
		"--psm", strconv.Itoa(t.psm),
	}
	if t.language != "" {
		args = append(args, "-l", t.language)
	}
	return args
}
