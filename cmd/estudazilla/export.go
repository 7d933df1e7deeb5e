package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/export"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

func newExportCommand() *cobra.Command {
	exportCommand := &cobra.Command{
		Use:   "export",
		Short: "Export study material to files",
	}

	exportCommand.AddCommand(newExportDocumentCommand())
	exportCommand.AddCommand(newExportMarkdownCommand())

	return exportCommand
}

func newExportDocumentCommand() *cobra.Command {
	format := export.FormatTXT
	command := &cobra.Command{
		Use:   "document <document-id>",
		Short: "Export the content of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			doc, err := a.service.GetDocument(cmd.Context(), id)
			if err != nil {
				return err
			}
			blocks, err := a.service.ListContent(cmd.Context(), id)
			if err != nil {
				return err
			}
			path, err := a.exporter.ExportContent(doc.Title, study.StructureOf(blocks), format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Conteúdo exportado para %s\n", path)
			return err
		},
	}
	command.Flags().Var(&format, "format", fmt.Sprintf("export format, one of %q", export.Formats))
	return command
}

func newExportMarkdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "markdown <file.md>",
		Short: "Convert a markdown file to PDF next to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := export.MarkdownFileToPDF(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "PDF gerado em %s\n", path)
			return err
		},
	}
}
