package notes

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/estudazilla/internal/export/docx"
)

func TestDOCXRoundTrip(t *testing.T) {
	s := newTestStore(t)
	inputs := []Input{
		{Title: "Reunião <semanal> & café", Content: "Tags: isto é conteúdo\n\tcom tab\nTipo: também", Tags: []string{"work", "q1"}, Type: "trabalho"},
		{Title: "Sem tags", Content: "Uma linha só.", Type: "geral"},
	}
	var stored []Note
	for _, in := range inputs {
		n, err := s.Add(in)
		require.NoError(t, err)
		stored = append(stored, *n)
	}

	path := filepath.Join(t.TempDir(), "notas.docx")
	require.NoError(t, ExportDOCX(stored, path))

	paragraphs, err := docx.Read(path)
	require.NoError(t, err)
	assert.Equal(t, docx.Paragraph{Style: docx.StyleHeading1, Text: "Reunião <semanal> & café"}, paragraphs[0])
	assert.Equal(t, docx.Paragraph{Text: "Tags: work, q1"}, paragraphs[1])

	imported, err := ImportDOCX(path)
	require.NoError(t, err)
	require.Len(t, imported, 2)
	for i, n := range stored {
		assert.Equal(t, n.Title, imported[i].Title)
		assert.Equal(t, n.Tags, imported[i].Tags)
		assert.Equal(t, n.Content, imported[i].Content)
		assert.Equal(t, n.Type, imported[i].Type)
	}

	other := newTestStore(t)
	added, err := other.Import(path)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, stored[0].Content, added[0].Content)
}

func TestImportDOCX_Invalid(t *testing.T) {
	_, err := ImportDOCX(filepath.Join(t.TempDir(), "missing.docx"))
	assert.ErrorIs(t, err, docx.ErrInvalidDocument)
}
