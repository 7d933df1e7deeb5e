package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/export"
	"github.com/at-ishikawa/estudazilla/internal/quiz"
	"github.com/at-ishikawa/estudazilla/internal/study"
)

func newQuizCommand() *cobra.Command {
	quizCommand := &cobra.Command{
		Use:   "quiz",
		Short: "Generate practice questions",
	}

	quizCommand.AddCommand(newQuizGenerateCommand())
	quizCommand.AddCommand(newQuizListCommand())

	return quizCommand
}

func newQuizGenerateCommand() *cobra.Command {
	var (
		contentID  int64
		documentID int64
		count      int
		save       bool
		format     export.Format
	)
	questionType := QuestionTypeFlag(quiz.TypeMultipleChoice)
	command := &cobra.Command{
		Use:   "generate",
		Short: "Generate questions from a content block or a whole document",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			questions, err := a.service.GenerateQuiz(cmd.Context(), study.QuizRequest{
				ContentID:  contentID,
				DocumentID: documentID,
				Count:      count,
				Type:       quiz.Type(questionType),
				Save:       save,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(questions) == 0 {
				_, err := fmt.Fprintln(out, "Não há texto suficiente para gerar questões.")
				return err
			}
			if format == "" {
				_, err := fmt.Fprint(out, export.QuizText(questions))
				return err
			}
			name := fmt.Sprintf("simulado_conteudo_%d", contentID)
			if documentID != 0 {
				name = fmt.Sprintf("simulado_documento_%d", documentID)
			}
			path, err := a.exporter.ExportQuiz(name, questions, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Simulado exportado para %s\n", path)
			return err
		},
	}
	command.Flags().Int64Var(&contentID, "content", 0, "content block to generate questions from")
	command.Flags().Int64Var(&documentID, "document", 0, "document to generate questions from")
	command.MarkFlagsMutuallyExclusive("content", "document")
	command.MarkFlagsOneRequired("content", "document")
	command.Flags().IntVar(&count, "count", 0, "number of questions, the configured default when zero")
	command.Flags().Var(&questionType, "type", fmt.Sprintf("question type, one of %q", quiz.Types))
	command.Flags().BoolVar(&save, "save", false, "store the questions in the database")
	command.Flags().Var(&format, "export", "write the quiz to a file of this format instead of printing it")
	return command
}

func newQuizListCommand() *cobra.Command {
	var questionType string
	command := &cobra.Command{
		Use:   "list",
		Short: "List stored questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			questions, err := a.service.ListQuestions(cmd.Context(), questionType)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, q := range questions {
				if _, err := fmt.Fprintf(out, "[%d] %s | %s > %s\n%s\nResposta: %s\n\n",
					q.ID, q.Type, q.Chapter, q.Theme, q.Text, q.CorrectAnswer); err != nil {
					return err
				}
			}
			return nil
		},
	}
	command.Flags().StringVar(&questionType, "type", "", "only list questions of this type")
	return command
}
