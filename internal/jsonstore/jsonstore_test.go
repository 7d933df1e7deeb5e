package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name      string `json:"name"`
	CreatedAt Time   `json:"created_at"`
}

func TestLoad(t *testing.T) {
	fallback := func() []entry { return []entry{{Name: "fallback"}} }

	tests := []struct {
		name    string
		content *string
		want    []entry
	}{
		{
			name: "missing file",
			want: fallback(),
		},
		{
			name:    "empty file",
			content: ptr(""),
			want:    fallback(),
		},
		{
			name:    "malformed file",
			content: ptr("{not json"),
			want:    fallback(),
		},
		{
			name:    "valid file",
			content: ptr(`[{"name": "a", "created_at": "2025-01-02 03:04:05"}]`),
			want: []entry{
				{Name: "a", CreatedAt: Time{time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			got, err := Load(path, fallback())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "historico.json")
	created := NewTime(time.Date(2025, 6, 7, 8, 9, 10, 500, time.Local))

	require.NoError(t, Save(path, []entry{{Name: "P&D <novo>", CreatedAt: created}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n    {\n        \"name\": \"P&D <novo>\",\n        \"created_at\": \"2025-06-07 08:09:10\"\n    }\n]\n", string(content))

	require.NoError(t, Save(path, []entry{}))
	got, err := Load[[]entry](path, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1, "temporary files are removed")
}

func TestTime_JSON(t *testing.T) {
	var zero Time
	data, err := zero.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))

	var parsed Time
	require.NoError(t, parsed.UnmarshalJSON([]byte(`""`)))
	assert.True(t, parsed.IsZero())

	assert.Error(t, parsed.UnmarshalJSON([]byte(`"07/06/2025"`)))
	assert.Error(t, parsed.UnmarshalJSON([]byte(`12`)))
}

func ptr(s string) *string {
	return &s
}
