package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.pdf"))
	assert.True(t, IsURL("http://example.com/a.pdf"))
	assert.False(t, IsURL("apostilas/a.pdf"))
	assert.False(t, IsURL("ftp://example.com/a.pdf"))
}

func TestDownloader_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/apostila.pdf", "/sem-extensao":
			_, _ = w.Write([]byte("%PDF-1.4\n%%EOF\n"))
		case "/pagina.html":
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tests := []struct {
		name       string
		path       string
		wantSuffix string
		wantErr    string
	}{
		{name: "pdf file", path: "/apostila.pdf", wantSuffix: "_apostila.pdf"},
		{name: "adds the extension", path: "/sem-extensao", wantSuffix: "_sem-extensao.pdf"},
		{name: "not a pdf", path: "/pagina.html", wantErr: ErrNotPDF.Error()},
		{name: "not found", path: "/faltando.pdf", wantErr: "status code: 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "downloads")
			got, err := NewDownloader(dir).Download(context.Background(), server.URL+tt.path)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dir, filepath.Dir(got))
			assert.True(t, strings.HasSuffix(got, tt.wantSuffix), got)
			content, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(content), "%PDF"))
		})
	}
}
