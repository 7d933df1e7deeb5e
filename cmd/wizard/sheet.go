package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/spreadsheet"
)

func newSheetCommand() *cobra.Command {
	sheetCommand := &cobra.Command{
		Use:   "sheet",
		Short: "Generate spreadsheets from templates",
	}

	sheetCommand.AddCommand(newSheetGenerateCommand())
	sheetCommand.AddCommand(newSheetTypesCommand())
	sheetCommand.AddCommand(newSheetHeadersCommand())

	return sheetCommand
}

func newSheetGenerateCommand() *cobra.Command {
	var (
		templateName string
		name         string
		headers      []string
		rows         int
		dir          string
		overwrite    bool
	)
	command := &cobra.Command{
		Use:   "generate",
		Short: "Write an .xlsx workbook with a styled header row",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				s, _, err := loadSettings(cfg)
				if err != nil {
					return err
				}
				dir = s.DefaultDir
			}
			path, err := spreadsheet.Generate(spreadsheet.Request{
				Type:        templateName,
				Name:        name,
				Headers:     headers,
				InitialRows: rows,
				Dir:         dir,
				Overwrite:   overwrite,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Planilha criada em %s\n", path)
			return err
		},
	}
	command.Flags().StringVar(&templateName, "type", "Controle de Tarefas", "template name")
	command.Flags().StringVar(&name, "name", "", "file name, derived from the template when empty")
	command.Flags().StringSliceVar(&headers, "headers", nil, "comma separated headers replacing the template ones")
	command.Flags().IntVar(&rows, "rows", 0, "blank bordered rows below the header")
	command.Flags().StringVar(&dir, "dir", "", "output directory, the default directory setting when empty")
	command.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing file")
	return command
}

func newSheetTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List spreadsheet templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range spreadsheet.Templates() {
				line := t.Name
				if len(t.Headers) > 0 {
					line += ": " + strings.Join(t.Headers, ", ")
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSheetHeadersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "headers <file.xlsx>",
		Short: "Print the header row of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := spreadsheet.ReadHeaders(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(headers, ", "))
			return err
		},
	}
}
