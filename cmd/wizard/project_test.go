package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/estudazilla/internal/project"
	"github.com/at-ishikawa/estudazilla/internal/settings"
	"github.com/at-ishikawa/estudazilla/internal/testutil"
)

func TestProjectCommands(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	baseDir := filepath.Join(tmpDir, "projetos")

	out, err := runCommand(t, cfgPath, "", "project", "create", "Relatorio", "--type", "Finanças", "--base-dir", baseDir)
	require.NoError(t, err)
	projectPath := filepath.Join(baseDir, "Relatorio")
	assert.Contains(t, out, projectPath)

	for _, d := range project.Directories {
		assert.DirExists(t, filepath.Join(projectPath, d.Name))
	}
	assert.FileExists(t, filepath.Join(projectPath, "README.md"))
	assert.FileExists(t, filepath.Join(projectPath, "scripts", "main.py"))
	assert.FileExists(t, filepath.Join(projectPath, "planilhas", "controle_finanças.xlsx"))

	s, err := settings.Load(filepath.Join(tmpDir, "data", settings.FileName))
	require.NoError(t, err)
	assert.Equal(t, baseDir, s.DefaultDir)
	assert.Equal(t, []string{projectPath}, s.RecentProjects)

	// The base directory setting is used when the flag is absent.
	out, err = runCommand(t, cfgPath, "", "project", "create", "Relatorio", "--no-readme", "--no-script", "--no-sheet")
	require.NoError(t, err)
	secondPath := filepath.Join(baseDir, "Relatorio_1")
	assert.Contains(t, out, `Projeto "Relatorio_1" (Outro)`)
	assert.NoFileExists(t, filepath.Join(secondPath, "README.md"))
	assert.NoFileExists(t, filepath.Join(secondPath, "planilhas", "controle_outro.xlsx"))

	out, err = runCommand(t, cfgPath, "", "project", "history")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Relatorio_1")
	assert.Contains(t, lines[1], "Finanças")

	out, err = runCommand(t, cfgPath, "", "project", "backup", projectPath)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(projectPath, project.BackupDir))

	entries, err := os.ReadDir(filepath.Join(projectPath, project.BackupDir))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	zr, err := zip.OpenReader(filepath.Join(projectPath, project.BackupDir, entries[0].Name()))
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "README.md")

	_, err = runCommand(t, cfgPath, "", "project", "create", "../fora", "--base-dir", baseDir)
	assert.ErrorIs(t, err, project.ErrInvalidName)

	history, err := os.ReadFile(filepath.Join(tmpDir, "data", project.HistoryFileName))
	require.NoError(t, err)
	var recorded []project.Project
	require.NoError(t, json.Unmarshal(history, &recorded))
	assert.Len(t, recorded, 2)
}

func TestProjectTypesCommand(t *testing.T) {
	out, err := runCommand(t, testutil.SetupTestConfig(t, t.TempDir()), "", "project", "types")
	require.NoError(t, err)
	for _, typ := range project.Types {
		assert.Contains(t, out, typ)
	}
	assert.Contains(t, out, "planilhas")
}

func TestProjectHistoryCommand_Empty(t *testing.T) {
	out, err := runCommand(t, testutil.SetupTestConfig(t, t.TempDir()), "", "project", "history")
	require.NoError(t, err)
	assert.Equal(t, "Nenhum projeto criado ainda.\n", out)
}
