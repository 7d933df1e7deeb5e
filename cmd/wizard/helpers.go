package main

import (
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/estudazilla/internal/automation"
	"github.com/at-ishikawa/estudazilla/internal/config"
	"github.com/at-ishikawa/estudazilla/internal/settings"
)

// newTools builds the automation tools. Tests replace it to avoid starting processes.
var newTools = func() *automation.Tools {
	return automation.NewTools(automation.NewExecRunner(slog.Default()))
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func loadSettings(cfg *config.Config) (settings.Settings, string, error) {
	path := cfg.WizardFile(settings.FileName)
	s, err := settings.Load(path)
	if err != nil {
		return settings.Settings{}, "", fmt.Errorf("settings.Load(%s) > %w", path, err)
	}
	return s, path, nil
}
