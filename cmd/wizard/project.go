package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/estudazilla/internal/project"
	"github.com/at-ishikawa/estudazilla/internal/settings"
)

const recentProjectsLimit = 10

func newProjectCommand() *cobra.Command {
	projectCommand := &cobra.Command{
		Use:   "project",
		Short: "Create and back up project folders",
	}

	projectCommand.AddCommand(newProjectCreateCommand())
	projectCommand.AddCommand(newProjectHistoryCommand())
	projectCommand.AddCommand(newProjectBackupCommand())
	projectCommand.AddCommand(newProjectTypesCommand())

	return projectCommand
}

func newProjectCreateCommand() *cobra.Command {
	var (
		projectType string
		baseDir     string
		noReadme    bool
		noScript    bool
		noSheet     bool
	)
	command := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project folder with its standard subdirectories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s, settingsPath, err := loadSettings(cfg)
			if err != nil {
				return err
			}
			if baseDir == "" {
				baseDir = s.DefaultDir
			}

			creator, err := project.NewCreator(project.NewHistory(cfg.WizardFile(project.HistoryFileName)))
			if err != nil {
				return err
			}
			p, err := creator.Create(project.Request{
				Name:        args[0],
				Type:        projectType,
				BaseDir:     baseDir,
				README:      !noReadme,
				MainScript:  !noScript,
				Spreadsheet: !noSheet,
			})
			if err != nil {
				return err
			}

			s.DefaultDir = baseDir
			s.AddRecentProject(p.Path, recentProjectsLimit)
			if err := settings.Save(settingsPath, s); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Projeto %q (%s) criado em %s\n", p.Name, p.Type, p.Path)
			return err
		},
	}
	command.Flags().StringVar(&projectType, "type", project.DefaultType, fmt.Sprintf("project type, one of %q", project.Types))
	command.Flags().StringVar(&baseDir, "base-dir", "", "directory the project is created in, the default directory setting when empty")
	command.Flags().BoolVar(&noReadme, "no-readme", false, "skip README.md")
	command.Flags().BoolVar(&noScript, "no-script", false, "skip scripts/main.py")
	command.Flags().BoolVar(&noSheet, "no-sheet", false, "skip the starter spreadsheet")
	return command
}

func newProjectHistoryCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "history",
		Short: "List created projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			projects, err := project.NewHistory(cfg.WizardFile(project.HistoryFileName)).Recent(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				_, err := fmt.Fprintln(out, "Nenhum projeto criado ainda.")
				return err
			}
			for _, p := range projects {
				if _, err := fmt.Fprintf(out, "%s  %-30s  %-15s  %s\n", p.CreatedAt, p.Name, p.Type, p.Path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 10, "maximum number of projects, all when zero")
	return command
}

func newProjectBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <project-dir>",
		Short: "Zip a project into its backups folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := project.Backup(args[0], time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Backup criado em %s\n", path)
			return err
		},
	}
}

func newProjectTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List project types and the folders every project gets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, t := range project.Types {
				if _, err := fmt.Fprintln(out, t); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(out, "\nPastas:"); err != nil {
				return err
			}
			for _, d := range project.Directories {
				if _, err := fmt.Fprintf(out, "  %-12s %s\n", d.Name, d.Description); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
