// File: cmd/strata/file_cmd.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"strata/internal/flags"
	"strata/pkg/common"
	"strata/pkg/formatter"
	"strata/pkg/resource"

	"github.com/spf13/cobra"
)

type fileFlags struct {
	bucket string
	name   string
	force  bool
}

func newFileCmd(app *appContainer) *cobra.Command {
	cmdFlags := fileFlags{}

	fileCmd := &cobra.Command{
		Use:   "file",
		Short: "Manage files stored in a bucket",
		Long: `The file command allows you to list, upload, rename, and delete files in a bucket.
The bucket's access key is looked up before every command; nothing is sent if that lookup fails.`,
	}

	// resolve returns the bucket's access key, refusing to continue without one
	resolve := func(ctx context.Context, token string) (resource.AccessKey, error) {
		key, ok := app.Resolver.Resolve(ctx, cmdFlags.bucket, token)
		if !ok {
			return resource.AccessKey{}, fmt.Errorf("could not resolve access key for bucket %s", cmdFlags.bucket)
		}
		return key, nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List files in a bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			key, err := resolve(cmd.Context(), token)
			if err != nil {
				return err
			}

			if err := app.Files.List(cmd.Context(), key, token); err != nil {
				return err
			}

			files := app.Files.Store().Snapshot().Items
			if len(files) == 0 && app.Config.Output.Format == formatter.OutputTable {
				fmt.Fprintf(app.Out, "No files found in bucket %s.\n", cmdFlags.bucket)
				return nil
			}
			return app.render(func() string { return app.Formatter.FormatFileList(files) }, files)
		},
	}

	uploadCmd := &cobra.Command{
		Use:   "upload [path]",
		Short: "Upload a local file to a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("error opening file: %w", err)
			}
			defer f.Close()

			name := cmdFlags.name
			if name == "" {
				name = filepath.Base(args[0])
			}

			key, err := resolve(cmd.Context(), token)
			if err != nil {
				return err
			}

			file, err := app.Files.Upload(cmd.Context(), key, name, f, token)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Uploaded '%s' (%s) with id %s.\n", file.Name, formatter.FormatBytes(file.Size), file.ID)
			return nil
		},
	}
	uploadCmd.Flags().StringVarP(&cmdFlags.name, flags.Name, flags.NameShort, "", "Store the file under this name instead of the local file name")

	renameCmd := &cobra.Command{
		Use:   "rename [file-id] [new-name]",
		Short: "Rename a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			// Renames are addressed by file id alone; the bucket must still resolve
			if _, err := resolve(cmd.Context(), token); err != nil {
				return err
			}

			if err := app.Files.Rename(cmd.Context(), args[0], args[1], token); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "File %s renamed to '%s'.\n", args[0], args[1])
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [file-id]...",
		Short: "Delete one or more files",
		Long: `Deletes files by id. A single file must be confirmed by typing its exact name, extension included;
several files are confirmed together. Use --force to skip confirmation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			key, err := resolve(cmd.Context(), token)
			if err != nil {
				return err
			}

			if err := app.Files.List(cmd.Context(), key, token); err != nil {
				return err
			}
			targets, err := targetsFrom(common.File, app.Files.Store().Snapshot().Items, args)
			if err != nil {
				return err
			}

			return app.confirmAndDelete(cmd.Context(), common.File, targets, cmdFlags.force, func(ctx context.Context, id string) error {
				return app.Files.Delete(ctx, key, id, token)
			})
		},
	}
	deleteCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Delete without asking for confirmation")

	for _, c := range []*cobra.Command{listCmd, uploadCmd, renameCmd, deleteCmd} {
		c.Flags().StringVarP(&cmdFlags.bucket, flags.Bucket, flags.BucketShort, "", "The bucket holding the files (required)")
		c.MarkFlagRequired(flags.Bucket)
	}

	fileCmd.AddCommand(listCmd, uploadCmd, renameCmd, deleteCmd)
	return fileCmd
}
