// File: cmd/strata/root.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"strata/internal/flags"
	"strata/pkg/formatter"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	debug       bool
	output      string
	metricsFile string
}

func newRootCmd(app *appContainer, rf *rootFlags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Strata is a command-line client for a project, bucket and file storage service.",
		Long: `A CLI to manage projects, the buckets inside them, and the files stored in each bucket
on a remote storage service. Authenticate once with 'strata auth set-token' and
every command reuses the stored credential until it expires.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if rf.debug {
				app.LevelVar.Set(slog.LevelDebug)
			}
			if cmd.Flags().Changed(flags.Output) {
				switch rf.output {
				case formatter.OutputTable, formatter.OutputYAML, formatter.OutputJSON:
					app.Config.Output.Format = rf.output
				default:
					return fmt.Errorf("unsupported output format '%s': use table, yaml or json", rf.output)
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&rf.debug, flags.Debug, flags.DebugShort, false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&rf.output, flags.Output, flags.OutputShort, formatter.OutputTable, "Output format: table, yaml or json")
	rootCmd.PersistentFlags().StringVar(&rf.metricsFile, flags.MetricsFile, "", "Write API request metrics to this file on exit (Prometheus text format)")

	rootCmd.AddCommand(
		newAuthCmd(app),
		newProjectCmd(app),
		newBucketCmd(app),
		newFileCmd(app),
		newConfigCmd(app),
	)
	return rootCmd
}

func Execute(app *appContainer) {
	var rf rootFlags
	err := newRootCmd(app, &rf).Execute()

	if rf.metricsFile != "" {
		if mErr := app.Metrics.WriteTextfile(rf.metricsFile); mErr != nil {
			app.Logger.Error("Failed to write metrics file", "path", rf.metricsFile, "error", mErr)
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// render prints a table via table() or encodes v, depending on the selected output format
func (a *appContainer) render(table func() string, v any) error {
	if a.Config.Output.Format == formatter.OutputTable {
		fmt.Fprintln(a.Out, table())
		return nil
	}
	return formatter.Encode(a.Out, a.Config.Output.Format, v)
}
