package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/notes"
)

func newNotesCommand() *cobra.Command {
	notesCommand := &cobra.Command{
		Use:   "notes",
		Short: "Keep tagged notes",
	}

	notesCommand.AddCommand(newNotesAddCommand())
	notesCommand.AddCommand(newNotesUpdateCommand())
	notesCommand.AddCommand(newNotesDeleteCommand())
	notesCommand.AddCommand(newNotesListCommand())
	notesCommand.AddCommand(newNotesSearchCommand())
	notesCommand.AddCommand(newNotesShowCommand())
	notesCommand.AddCommand(newNotesExportCommand())
	notesCommand.AddCommand(newNotesImportCommand())

	return notesCommand
}

func openNotes() (*notes.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return notes.NewStore(cfg.WizardFile(notes.FileName)), nil
}

type noteFlags struct {
	title    string
	content  string
	tags     string
	noteType string
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "note title")
	cmd.Flags().StringVar(&f.content, "content", "", "note content")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma separated tags")
	cmd.Flags().StringVar(&f.noteType, "type", notes.DefaultType, fmt.Sprintf("note type, one of %q", notes.Types))
}

func newNotesAddCommand() *cobra.Command {
	var flags noteFlags
	command := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openNotes()
			if err != nil {
				return err
			}
			n, err := store.Add(notes.Input{
				Title:   flags.title,
				Content: flags.content,
				Tags:    notes.ParseTags(flags.tags),
				Type:    flags.noteType,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Nota %s criada.\n", n.ID)
			return err
		},
	}
	flags.register(command)
	return command
}

func newNotesUpdateCommand() *cobra.Command {
	var flags noteFlags
	command := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the fields of a note given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openNotes()
			if err != nil {
				return err
			}
			current, err := store.Get(args[0])
			if err != nil {
				return err
			}
			in := notes.Input{
				Title:   current.Title,
				Content: current.Content,
				Tags:    current.Tags,
				Type:    current.Type,
			}
			if cmd.Flags().Changed("title") {
				in.Title = flags.title
			}
			if cmd.Flags().Changed("content") {
				in.Content = flags.content
			}
			if cmd.Flags().Changed("tags") {
				in.Tags = notes.ParseTags(flags.tags)
			}
			if cmd.Flags().Changed("type") {
				in.Type = flags.noteType
			}
			if _, err := store.Update(args[0], in); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Nota %s atualizada.\n", args[0])
			return err
		},
	}
	flags.register(command)
	return command
}

func newNotesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openNotes()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Nota %s removida.\n", args[0])
			return err
		},
	}
}

func newNotesListCommand() *cobra.Command {
	var tag, noteType string
	command := &cobra.Command{
		Use:   "list",
		Short: "List notes, optionally filtered by tag and type",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openNotes()
			if err != nil {
				return err
			}
			found, err := store.Filter(tag, noteType)
			if err != nil {
				return err
			}
			return printNotes(cmd.OutOrStdout(), found)
		},
	}
	command.Flags().StringVar(&tag, "tag", "", "only notes with this tag")
	command.Flags().StringVar(&noteType, "type", "", "only notes of this type")
	return command
}

func newNotesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find notes whose title, content or tags contain a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openNotes()
			if err != nil {
				return err
			}
			found, err := store.Search(args[0])
			if err != nil {
				return err
			}
			return printNotes(cmd.OutOrStdout(), found)
		},
	}
}

func newNotesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openNotes()
			if err != nil {
				return err
			}
			n, err := store.Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nTipo: %s\nTags: %s\nCriada: %s\nAtualizada: %s\n\n%s\n",
				n.Title, n.Type, strings.Join(n.Tags, ", "), n.CreatedAt, n.UpdatedAt, n.Content)
			return err
		},
	}
}

func newNotesExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.docx>",
		Short: "Export every note to a Word document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openNotes()
			if err != nil {
				return err
			}
			all, err := store.List()
			if err != nil {
				return err
			}
			if err := notes.ExportDOCX(all, args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d nota(s) exportada(s) para %s\n", len(all), args[0])
			return err
		},
	}
}

func newNotesImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.docx>",
		Short: "Import notes from a Word document written by export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openNotes()
			if err != nil {
				return err
			}
			imported, err := store.Import(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d nota(s) importada(s).\n", len(imported))
			return err
		},
	}
}

func printNotes(w io.Writer, list []notes.Note) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "Nenhuma nota encontrada.")
		return err
	}
	for _, n := range list {
		tags := ""
		if len(n.Tags) > 0 {
			tags = " [" + strings.Join(n.Tags, ", ") + "]"
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %-8s %s%s\n", n.ID, n.UpdatedAt, n.Type, n.Title, tags); err != nil {
			return err
		}
	}
	return nil
}
