package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/automation"
)

func newAutoCommand() *cobra.Command {
	autoCommand := &cobra.Command{
		Use:   "auto",
		Short: "Launch applications, open links, run commands and clean up files",
	}

	autoCommand.AddCommand(newAutoAppsCommand())
	autoCommand.AddCommand(newAutoOpenAppCommand())
	autoCommand.AddCommand(newAutoLinksCommand())
	autoCommand.AddCommand(newAutoOpenLinkCommand())
	autoCommand.AddCommand(newAutoRunCommand())
	autoCommand.AddCommand(newAutoCleanCommand())

	return autoCommand
}

func newAutoAppsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List the applications that can be opened",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, app := range newTools().Apps() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-25s %s\n", app.Name, strings.Join(app.Command, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newAutoOpenAppCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open-app <name>",
		Short: "Open an application by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newTools().OpenApp(args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s aberto.\n", args[0])
			return err
		},
	}
}

func newAutoLinksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List the quick links",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, link := range newTools().Links() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", link.Name, link.URL); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newAutoOpenLinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open-link <name>",
		Short: "Open a quick link in the default browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newTools().OpenLink(args[0])
		},
	}
}

func newAutoRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <command>",
		Short: "Run a shell command in the background",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newTools().RunCommand(strings.Join(args, " "))
		},
	}
}

func newAutoCleanCommand() *cobra.Command {
	var extensions []string
	command := &cobra.Command{
		Use:   "clean <dir>",
		Short: "Delete temporary files below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := automation.CleanTempFiles(args[0], extensions)
			out := cmd.OutOrStdout()
			for _, path := range removed {
				if _, printErr := fmt.Fprintf(out, "removido: %s\n", path); printErr != nil {
					return printErr
				}
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%d arquivo(s) removido(s).\n", len(removed))
			return err
		},
	}
	command.Flags().StringSliceVar(&extensions, "ext", automation.DefaultTempExtensions, "file suffixes to delete")
	return command
}
