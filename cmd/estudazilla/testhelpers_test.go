package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/estudazilla/internal/config"
	"github.com/at-ishikawa/estudazilla/internal/database"
	"github.com/at-ishikawa/estudazilla/internal/study"
	"github.com/at-ishikawa/estudazilla/internal/testutil"
)

func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupSeededConfig writes a test config whose database holds the sample document.
func setupSeededConfig(t *testing.T) (string, *config.Config, *study.Document, []study.ContentBlock) {
	t.Helper()
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())

	loader, err := config.NewConfigLoader(cfgPath)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	db, err := database.Open(cfg.Database)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	require.NoError(t, database.Migrate(context.Background(), db))
	doc, blocks := testutil.SeedDocument(t, study.NewDBRepository(db), "biologia")
	return cfgPath, cfg, doc, blocks
}

// runCommand executes the root command with the given config file and returns its output.
func runCommand(t *testing.T, cfgPath, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}
