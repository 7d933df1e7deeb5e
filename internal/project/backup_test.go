package project

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackup(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"README.md":              "# Projeto",
		"scripts/main.py":        "print('ok')",
		"dados/raw/input.csv":    "a,b",
		"backups/old_backup.zip": "old",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "outputs"), 0755))

	now := time.Date(2025, 7, 8, 9, 10, 11, 0, time.Local)
	archive, err := Backup(root, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "backups", "backup_20250708_091011.zip"), archive)

	r, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	contents := map[string]string{}
	for _, f := range r.File {
		names = append(names, f.Name)
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		contents[f.Name] = string(data)
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"README.md",
		"dados/",
		"dados/raw/",
		"dados/raw/input.csv",
		"outputs/",
		"scripts/",
		"scripts/main.py",
	}, names)
	assert.Equal(t, "a,b", contents["dados/raw/input.csv"])

	_, err = Backup(root, now)
	assert.Error(t, err, "an archive for the same second already exists")
}

func TestBackup_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := Backup(file, time.Now())
	assert.Error(t, err)
	_, err = Backup(filepath.Join(t.TempDir(), "missing"), time.Now())
	assert.Error(t, err)
}
