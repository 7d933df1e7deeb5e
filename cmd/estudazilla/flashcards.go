package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/cli"
	"github.com/at-ishikawa/estudazilla/internal/export"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

func newFlashcardsCommand() *cobra.Command {
	flashcardsCommand := &cobra.Command{
		Use:   "flashcards",
		Short: "Create, review and share flashcards",
	}

	flashcardsCommand.AddCommand(newFlashcardsCreateCommand())
	flashcardsCommand.AddCommand(newFlashcardsListCommand())
	flashcardsCommand.AddCommand(newFlashcardsReviewCommand())
	flashcardsCommand.AddCommand(newFlashcardsExportCommand())
	flashcardsCommand.AddCommand(newFlashcardsImportCommand())

	return flashcardsCommand
}

func newFlashcardsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <content-id>",
		Short: "Create a flashcard from a content block",
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

			card, err := a.service.CreateFlashcardFromContent(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Flashcard %d criado.\nPergunta: %s\nResposta: %s\n", card.ID, card.Question, card.Answer)
			return err
		},
	}
}

func newFlashcardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List flashcards, least recently reviewed first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			cards, err := a.service.ListFlashcards(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range cards {
				reviewed := "nunca revisado"
				if c.LastReviewed != nil {
					reviewed = c.LastReviewed.Local().Format("2006-01-02 15:04")
				}
				if _, err := fmt.Fprintf(out, "[%d] %s > %s (%s, %s)\n    %s\n",
					c.ID, c.Chapter, c.Theme, c.Difficulty, reviewed, c.Question); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newFlashcardsReviewCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "review",
		Short: "Review flashcards interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			review, err := cli.NewFlashcardReviewCLI(ctx, a.service, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			review.Limit(limit)
			return review.Run(ctx, review)
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "maximum number of cards to review, all when zero")
	return command
}

func newFlashcardsExportCommand() *cobra.Command {
	var name string
	format := export.FormatYAML
	command := &cobra.Command{
		Use:   "export",
		Short: "Export every flashcard as a deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			cards, err := a.service.ListFlashcards(cmd.Context())
			if err != nil {
				return err
			}
			path, err := a.exporter.ExportFlashcards(name, cards, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d flashcard(s) exportado(s) para %s\n", len(cards), path)
			return err
		},
	}
	command.Flags().StringVar(&name, "name", "flashcards", "file name without extension")
	command.Flags().Var(&format, "format", "deck format")
	return command
}

func newFlashcardsImportCommand() *cobra.Command {
	var contentID int64
	command := &cobra.Command{
		Use:   "import <deck.yaml>",
		Short: "Import a deck, attaching every card to a content block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deck, err := export.ImportDeck(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if _, err := a.service.GetContent(ctx, contentID); err != nil {
				return err
			}
			now := time.Now().UTC().Truncate(time.Second)
			for _, c := range deck.Cards {
				difficulty := study.Difficulty(c.Difficulty)
				if !difficulty.Valid() {
					difficulty = study.DifficultyEasy
				}
				if err := a.service.CreateFlashcard(ctx, &study.Flashcard{
					ContentID:   contentID,
					Question:    c.Question,
					Answer:      c.Answer,
					CreatedDate: now,
					Difficulty:  difficulty,
				}); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d flashcard(s) importado(s) de %s\n", len(deck.Cards), deck.Title)
			return err
		},
	}
	command.Flags().Int64Var(&contentID, "content", 0, "content block the cards belong to")
	_ = command.MarkFlagRequired("content")
	return command
}
