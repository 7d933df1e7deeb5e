package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics and what to review next",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			stats, err := a.service.Stats(cmd.Context())
			if err != nil {
				return err
			}
			suggestion, err := a.service.ReviewSuggestion(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Documentos: %d\nFlashcards: %d\nQuestões: %d\n",
				stats.Documents, stats.Flashcards, stats.Questions); err != nil {
				return err
			}
			if suggestion == nil {
				return nil
			}
			_, err = fmt.Fprintf(out, "Sugestão de revisão: %s > %s (%d bloco(s) sem flashcard)\n",
				suggestion.Chapter, suggestion.Theme, suggestion.Pending)
			return err
		},
	}
}
