package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/bootstrap"
	"github.com/at-ishikawa/estudazilla/internal/server"
)

func newServeCommand() *cobra.Command {
	var port int
	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve the study API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if port > 0 {
				a.cfg.Server.Port = port
			}

			logger := slog.Default()
			router := server.NewRouter(&server.Deps{
				Service:   a.service,
				Exporter:  a.exporter,
				Config:    a.cfg.Server,
				UploadDir: filepath.Join(a.cfg.Exports.Directory, "uploads"),
				Logger:    logger,
			})
			srv := server.NewHTTPServer(a.cfg.Server, router)

			app := bootstrap.New()
			app.AddShutdownHook(func(context.Context) error {
				return a.Close()
			})
			return app.Serve(cmd.Context(), srv, logger)
		},
	}
	command.Flags().IntVar(&port, "port", 0, "port to listen on, overriding the configuration")
	return command
}
