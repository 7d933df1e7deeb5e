package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/export"
	"github.com/at-ishikawa/estudazilla/internal/summary"
)

func newSummarizeCommand() *cobra.Command {
	style := StyleFlag(summary.StyleBullet)
	var format export.Format
	command := &cobra.Command{
		Use:   "summarize <content-id>",
		Short: "Summarize a content block",
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

			text, err := a.service.Summarize(cmd.Context(), id, summary.Style(style))
			if err != nil {
				return err
			}
			if format == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}
			path, err := a.exporter.ExportText(fmt.Sprintf("resumo_%d_%s", id, style), text, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Resumo exportado para %s\n", path)
			return err
		},
	}
	command.Flags().Var(&style, "style", fmt.Sprintf("summary style, one of %q", summary.Styles))
	command.Flags().Var(&format, "export", "write the summary to a file of this format instead of printing it")
	return command
}
