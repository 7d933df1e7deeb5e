// Package testutil provides shared test helpers for config files, databases and study fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/estudazilla/internal/config"
	"github.com/at-ishikawa/estudazilla/internal/database"
	"github.com/at-ishikawa/estudazilla/internal/pdf"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

// SetupTestConfig creates a config file whose database, exports and wizard data live under tmpDir.
// OCR points at a binary that does not exist. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"exports", "data"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`database:
  driver: sqlite3
  path: %s
ocr:
  binary: %s
exports:
  directory: %s
quiz:
  seed: 42
wizard:
  data_directory: %s
`,
		filepath.Join(tmpDir, "estudazilla.db"),
		filepath.Join(tmpDir, "missing-tesseract"),
		filepath.Join(tmpDir, "exports"),
		filepath.Join(tmpDir, "data"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewTestDB opens a migrated in-memory SQLite database closed at the end of the test.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: database.DriverSQLite})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

// SampleBlocks returns tagged blocks spanning two chapters.
func SampleBlocks() []pdf.Block {
	return []pdf.Block{
		{
			Page: 1, Chapter: "Introdução", Theme: "Células", Subtheme: pdf.NoSubtheme,
			Text: "A célula é a unidade básica da vida. Ela possui membrana e citoplasma. O núcleo guarda o material genético. Um grande aumento de células forma tecidos.",
		},
		{
			Page: 2, Chapter: "Introdução", Theme: "Células", Subtheme: "Organelas",
			Text: "As mitocôndrias produzem energia. Os ribossomos sintetizam proteínas.",
		},
		{
			Page: 3, Chapter: "Genética", Theme: pdf.NoTheme, Subtheme: pdf.NoSubtheme,
			Text: "Os genes são segmentos de DNA.",
		},
	}
}

// SampleStructure returns the structure built from SampleBlocks.
func SampleStructure() *pdf.Structure {
	return pdf.FromBlocks(SampleBlocks())
}

// SeedDocument stores a document with the sample structure and returns it with its blocks.
func SeedDocument(t *testing.T, repo study.Repository, title string) (*study.Document, []study.ContentBlock) {
	t.Helper()

	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := &study.Document{
		Title:        title,
		FilePath:     filepath.Join("testdata", title+".pdf"),
		UploadDate:   now,
		LastAccessed: now,
		Category:     "Biologia",
		Pages:        3,
	}
	require.NoError(t, repo.CreateDocument(ctx, doc))
	blocks, err := repo.SaveContent(ctx, doc.ID, SampleStructure())
	require.NoError(t, err)
	return doc, blocks
}
