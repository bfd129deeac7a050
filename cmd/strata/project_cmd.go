// File: cmd/strata/project_cmd.go
package main

import (
	"context"
	"fmt"

	"strata/internal/flags"
	"strata/pkg/common"
	"strata/pkg/formatter"

	"github.com/spf13/cobra"
)

type projectFlags struct {
	force bool
}

func newProjectCmd(app *appContainer) *cobra.Command {
	cmdFlags := projectFlags{}

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  `The project command allows you to list, create, rename, and delete projects. Projects own buckets.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if err := app.Projects.List(cmd.Context(), token); err != nil {
				return err
			}

			projects := app.Projects.Store().Snapshot().Items
			if len(projects) == 0 && app.Config.Output.Format == formatter.OutputTable {
				fmt.Fprintln(app.Out, "No projects found. Use 'strata project create <name>'.")
				return nil
			}
			return app.render(func() string { return app.Formatter.FormatProjectList(projects) }, projects)
		},
	}

	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			project, err := app.Projects.Create(cmd.Context(), args[0], token)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Project '%s' created with id %s.\n", project.Name, project.ID)
			return nil
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename [project-id] [new-name]",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if err := app.Projects.Rename(cmd.Context(), args[0], args[1], token); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Project %s renamed to '%s'.\n", args[0], args[1])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [project-id]...",
		Short: "Delete one or more projects",
		Long: `Deletes projects by id. A single project must be confirmed by typing its exact name;
several projects are confirmed together. Use --force to skip confirmation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if err := app.Projects.List(cmd.Context(), token); err != nil {
				return err
			}
			targets, err := targetsFrom(common.Project, app.Projects.Store().Snapshot().Items, args)
			if err != nil {
				return err
			}

			return app.confirmAndDelete(cmd.Context(), common.Project, targets, cmdFlags.force, func(ctx context.Context, id string) error {
				return app.Projects.Delete(ctx, id, token)
			})
		},
	}
	deleteCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Delete without asking for confirmation")

	projectCmd.AddCommand(listCmd, createCmd, renameCmd, deleteCmd)
	return projectCmd
}
