package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/study"
)

func newDocumentsCommand() *cobra.Command {
	documentsCommand := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Manage ingested documents",
	}

	documentsCommand.AddCommand(newDocumentsListCommand())
	documentsCommand.AddCommand(newDocumentsShowCommand())
	documentsCommand.AddCommand(newDocumentsDeleteCommand())
	documentsCommand.AddCommand(newDocumentsImportantCommand())

	return documentsCommand
}

func newDocumentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List documents, most recently accessed first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			docs, err := a.service.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				_, err := fmt.Fprintln(out, "Nenhum documento encontrado.")
				return err
			}
			for _, d := range docs {
				if _, err := fmt.Fprintf(out, "%4d  %-40s  %-15s  %3d pág.  %s\n",
					d.ID, d.Title, d.Category, d.Pages, d.LastAccessed.Local().Format("2006-01-02 15:04")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newDocumentsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <document-id>",
		Short: "Show the chapters, themes and content blocks of a document",
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

			doc, _, err := a.service.OpenDocument(cmd.Context(), id)
			if err != nil {
				return err
			}
			blocks, err := a.service.ListContent(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printDocument(cmd.OutOrStdout(), doc, blocks)
		},
	}
}

func printDocument(w io.Writer, doc *study.Document, blocks []study.ContentBlock) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", doc.Title, doc.Category); err != nil {
		return err
	}
	var chapter, theme string
	for _, b := range blocks {
		if b.Chapter != chapter {
			chapter, theme = b.Chapter, ""
			if _, err := fmt.Fprintf(w, "\nCAPÍTULO: %s\n", chapter); err != nil {
				return err
			}
		}
		if b.Theme != theme {
			theme = b.Theme
			if _, err := fmt.Fprintf(w, "  TEMA: %s\n", theme); err != nil {
				return err
			}
		}
		mark := ""
		if b.IsImportant {
			mark = " *"
		}
		if _, err := fmt.Fprintf(w, "    [%d] %s, página %d%s\n", b.ID, b.Subtheme, b.Page, mark); err != nil {
			return err
		}
	}
	return nil
}

func newDocumentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document with its content, flashcards and questions",
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

			if err := a.service.DeleteDocument(cmd.Context(), id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Documento %d removido.\n", id)
			return err
		},
	}
}

func newDocumentsImportantCommand() *cobra.Command {
	var unset bool
	command := &cobra.Command{
		Use:   "important <content-id>",
		Short: "Mark a content block as important",
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

			return a.service.MarkImportant(cmd.Context(), id, !unset)
		},
	}
	command.Flags().BoolVar(&unset, "unset", false, "clear the mark instead")
	return command
}
