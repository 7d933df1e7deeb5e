// Package fetch downloads remote PDFs so they can be ingested like local files.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ErrNotPDF is returned when the downloaded body is not a PDF file.
var ErrNotPDF = errors.New("downloaded file is not a PDF")

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

type Downloader struct {
	client *resty.Client
	dir    string
}

// NewDownloader creates a Downloader storing files under dir.
func NewDownloader(dir string) *Downloader {
	return &Downloader{
		client: resty.New().SetRetryCount(2),
		dir:    dir,
	}
}

// Download fetches rawURL into the download directory and returns the local path.
func (d *Downloader) Download(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("url.Parse(%s) > %w", rawURL, err)
	}

	res, err := d.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/pdf").
		Get(u.String())
	if err != nil {
		return "", fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("status code: %d, url: %s", res.StatusCode(), rawURL)
	}
	body := res.Body()
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		return "", fmt.Errorf("%s: %w", rawURL, ErrNotPDF)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		name = "documento"
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", d.dir, err)
	}
	dst := filepath.Join(d.dir, uuid.NewString()+"_"+name)
	if err := os.WriteFile(dst, body, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", dst, err)
	}
	return dst, nil
}
