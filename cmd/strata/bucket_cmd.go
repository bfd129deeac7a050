// File: cmd/strata/bucket_cmd.go
package main

import (
	"context"
	"fmt"

	"strata/internal/flags"
	"strata/pkg/common"
	"strata/pkg/formatter"

	"github.com/spf13/cobra"
)

type bucketFlags struct {
	project string
	force   bool
}

func newBucketCmd(app *appContainer) *cobra.Command {
	cmdFlags := bucketFlags{}

	bucketCmd := &cobra.Command{
		Use:   "bucket",
		Short: "Manage buckets inside a project",
		Long: `The bucket command allows you to list, describe, create, rename, and delete buckets.
Listing also reports each bucket's storage usage against the 2048 MB display capacity.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List buckets of a project with their usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if err := app.Buckets.List(cmd.Context(), cmdFlags.project, token); err != nil {
				return err
			}

			buckets := app.Buckets.Store().Snapshot().Items
			if len(buckets) == 0 && app.Config.Output.Format == formatter.OutputTable {
				fmt.Fprintf(app.Out, "No buckets found in project %s.\n", cmdFlags.project)
				return nil
			}
			return app.render(func() string { return app.Formatter.FormatBucketList(buckets) }, buckets)
		},
	}
	listCmd.Flags().StringVarP(&cmdFlags.project, flags.Project, flags.ProjectShort, "", "The project whose buckets to list (required)")
	listCmd.MarkFlagRequired(flags.Project)

	describeCmd := &cobra.Command{
		Use:   "describe [bucket-id]",
		Short: "Describe a bucket and its usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if err := app.Buckets.List(cmd.Context(), cmdFlags.project, token); err != nil {
				return err
			}
			bucket, ok := app.Buckets.Store().Snapshot().Find(args[0])
			if !ok {
				return fmt.Errorf("bucket '%s' not found in project %s", args[0], cmdFlags.project)
			}
			return app.render(func() string { return app.Formatter.FormatBucketDetails(bucket) }, bucket)
		},
	}
	describeCmd.Flags().StringVarP(&cmdFlags.project, flags.Project, flags.ProjectShort, "", "The project the bucket belongs to (required)")
	describeCmd.MarkFlagRequired(flags.Project)

	createCmd := &cobra.Command{
		Use:   "create [bucket-name]",
		Short: "Create a new bucket in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			bucket, err := app.Buckets.Create(cmd.Context(), cmdFlags.project, args[0], token)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Bucket '%s' created with id %s in project %s.\n", bucket.Name, bucket.ID, cmdFlags.project)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&cmdFlags.project, flags.Project, flags.ProjectShort, "", "The project to create the bucket in (required)")
	createCmd.MarkFlagRequired(flags.Project)

	renameCmd := &cobra.Command{
		Use:   "rename [bucket-id] [new-name]",
		Short: "Rename a bucket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if err := app.Buckets.Rename(cmd.Context(), args[0], args[1], token); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Bucket %s renamed to '%s'.\n", args[0], args[1])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [bucket-id]...",
		Short: "Delete one or more buckets",
		Long: `Deletes buckets by id. A single bucket must be confirmed by typing its exact name;
several buckets are confirmed together. Use --force to skip confirmation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if err := app.Buckets.List(cmd.Context(), cmdFlags.project, token); err != nil {
				return err
			}
			targets, err := targetsFrom(common.Bucket, app.Buckets.Store().Snapshot().Items, args)
			if err != nil {
				return err
			}

			return app.confirmAndDelete(cmd.Context(), common.Bucket, targets, cmdFlags.force, func(ctx context.Context, id string) error {
				return app.Buckets.Delete(ctx, id, token)
			})
		},
	}
	deleteCmd.Flags().StringVarP(&cmdFlags.project, flags.Project, flags.ProjectShort, "", "The project the buckets belong to (required)")
	deleteCmd.MarkFlagRequired(flags.Project)
	deleteCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Delete without asking for confirmation")

	bucketCmd.AddCommand(listCmd, describeCmd, createCmd, renameCmd, deleteCmd)
	return bucketCmd
}
