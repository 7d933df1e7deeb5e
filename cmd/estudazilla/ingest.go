package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/fetch"
	"github.com/at-ishikawa/estudazilla/internal/pdf"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

func newIngestCommand() *cobra.Command {
	var title, category string
	command := &cobra.Command{
		Use:   "ingest <file-directory-or-url>",
		Short: "Extract a PDF, every PDF below a directory, or a downloaded PDF into the study database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if fetch.IsURL(args[0]) {
				path, err := fetch.NewDownloader(filepath.Join(a.cfg.Exports.Directory, "uploads")).Download(ctx, args[0])
				if err != nil {
					return fmt.Errorf("Download(%s) > %w", args[0], err)
				}
				args[0] = path
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("os.Stat(%s) > %w", args[0], err)
			}
			if !info.IsDir() {
				result, err := a.service.Ingest(ctx, args[0], title, category)
				if err != nil {
					return err
				}
				return printIngestResult(cmd.OutOrStdout(), result)
			}

			paths, err := pdf.NewScanner(nil).FindPDFs(ctx, args[0])
			if err != nil {
				return fmt.Errorf("FindPDFs(%s) > %w", args[0], err)
			}
			for _, path := range paths {
				result, err := a.service.Ingest(ctx, path, "", category)
				if err != nil {
					return err
				}
				if err := printIngestResult(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			}
			return nil
		},
	}
	command.Flags().StringVar(&title, "title", "", "document title, the file name by default (ignored for directories)")
	command.Flags().StringVar(&category, "category", "", "document category")
	return command
}

func printIngestResult(w io.Writer, result *study.IngestResult) error {
	if _, err := fmt.Fprintf(w, "Documento %d: %s (%d página(s), %d bloco(s))\n",
		result.Document.ID, result.Document.Title, result.Document.Pages, len(result.Blocks)); err != nil {
		return err
	}
	if len(result.OCRPages) > 0 {
		if _, err := fmt.Fprintf(w, "  OCR nas páginas %v\n", result.OCRPages); err != nil {
			return err
		}
	}
	return nil
}
