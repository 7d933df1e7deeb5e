package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/datasync"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

func newDataCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "data",
		Short: "Back up or restore the study database as YAML",
	}

	command.AddCommand(&cobra.Command{
		Use:   "export <file.yaml>",
		Short: "Write every document, flashcard and question to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			snapshot, err := datasync.NewExporter(study.NewDBRepository(a.db)).Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("Export() > %w", err)
			}
			if err := datasync.WriteSnapshot(args[0], snapshot); err != nil {
				return fmt.Errorf("WriteSnapshot() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d documento(s) exportado(s) para %s\n", len(snapshot.Documents), args[0])
			return nil
		},
	})

	var opts datasync.ImportOptions
	importCommand := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Load documents, flashcards and questions from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := datasync.ReadSnapshot(args[0])
			if err != nil {
				return fmt.Errorf("ReadSnapshot() > %w", err)
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if opts.DryRun {
				fmt.Fprintln(out, "Simulação: nada será gravado.")
			}
			result, err := datasync.NewImporter(study.NewDBRepository(a.db), out).Import(cmd.Context(), snapshot, opts)
			if err != nil {
				return fmt.Errorf("Import() > %w", err)
			}
			fmt.Fprintf(out, "Documentos: %d novo(s), %d atualizado(s), %d ignorado(s)\n",
				result.DocumentsNew, result.DocumentsUpdated, result.DocumentsSkipped)
			fmt.Fprintf(out, "Blocos: %d, flashcards: %d, questões: %d\n",
				result.ContentNew, result.FlashcardsNew, result.QuestionsNew)
			return nil
		},
	}
	importCommand.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show what would be imported without writing")
	importCommand.Flags().BoolVar(&opts.UpdateExisting, "update", false, "Replace documents that already exist")
	command.AddCommand(importCommand)

	return command
}
