package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/estudazilla/internal/config"
	"github.com/at-ishikawa/estudazilla/internal/database"
	"github.com/at-ishikawa/estudazilla/internal/export"
	"github.com/at-ishikawa/estudazilla/internal/ocr"
	"github.com/at-ishikawa/estudazilla/internal/pdf"
	"github.com/at-ishikawa/estudazilla/internal/quiz"
	"github.com/at-ishikawa/estudazilla/internal/study"
	"github.com/at-ishikawa/estudazilla/internal/summary"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// app is the set of collaborators shared by the commands.
type app struct {
	cfg      *config.Config
	db       *sqlx.DB
	service  *study.Service
	exporter *export.Exporter
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Ping(ctx, db, cfg.Database.ConnectRetries); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Ping() > %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}

	logger := slog.Default()
	var engine ocr.Engine
	if tesseract := ocr.NewTesseract(cfg.OCR, logger); tesseract.Available() {
		engine = tesseract
	} else {
		logger.Debug("tesseract is not installed, scanned pages will be skipped", slog.String("binary", cfg.OCR.Binary))
	}

	var inspect func(path string) (*pdf.Info, error)
	if cfg.PDF.Validate {
		inspect = func(path string) (*pdf.Info, error) {
			return pdf.Inspect(path, true)
		}
	}

	service := study.NewService(study.ServiceConfig{
		Repository: study.NewDBRepository(db),
		Processor:  pdf.NewProcessor(pdf.NewFitzExtractor(cfg.PDF.RenderDPI), engine, logger),
		Inspect:    inspect,
		Summarizer: summary.NewSummarizer(cfg.Summary.Sentences, cfg.Summary.Keywords),
		Generator:  quiz.NewGenerator(cfg.Quiz.Seed),
		Questions:  cfg.Quiz.Questions,
		Logger:     logger,
	})

	return &app{
		cfg:      cfg,
		db:       db,
		service:  service,
		exporter: export.NewExporter(cfg.Exports),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
