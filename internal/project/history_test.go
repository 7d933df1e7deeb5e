package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/estudazilla/internal/jsonstore"
)

func TestHistory_Recent(t *testing.T) {
	history := NewHistory(filepath.Join(t.TempDir(), HistoryFileName))

	empty, err := history.Recent(5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i := range 7 {
		require.NoError(t, history.Append(Project{
			Name:      string(rune('a' + i)),
			Path:      "/p",
			Type:      "IA",
			CreatedAt: jsonstore.NewTime(time.Date(2025, 1, i+1, 0, 0, 0, 0, time.Local)),
		}))
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{limit: 3, want: []string{"g", "f", "e"}},
		{limit: 10, want: []string{"g", "f", "e", "d", "c", "b", "a"}},
		{limit: 0, want: []string{"g", "f", "e", "d", "c", "b", "a"}},
	}
	for _, tt := range tests {
		recent, err := history.Recent(tt.limit)
		require.NoError(t, err)
		var names []string
		for _, p := range recent {
			names = append(names, p.Name)
		}
		assert.Equal(t, tt.want, names, "limit %d", tt.limit)
	}

	all, err := history.All()
	require.NoError(t, err)
	assert.Equal(t, "a", all[0].Name, "Recent does not reorder the file")
}

func TestHistory_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFileName)
	history := NewHistory(path)
	require.NoError(t, history.Append(Project{
		Name:      "Logística 2025",
		Path:      "/home/ana/Projects/Logística 2025",
		Type:      "Logística",
		CreatedAt: jsonstore.NewTime(time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local)),
	}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "Logística 2025", "path": "/home/ana/Projects/Logística 2025", "type": "Logística", "created_at": "2025-03-04 05:06:07"}]`, string(content))
}

func TestHistory_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFileName)
	require.NoError(t, os.WriteFile(path, []byte("[{broken"), 0644))
	history := NewHistory(path)

	all, err := history.All()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, history.Append(Project{Name: "novo"}))
	all, err = history.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "novo", all[0].Name)
}
