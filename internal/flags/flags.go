// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Project flags scope bucket operations to one project
	Project      = "project"
	ProjectShort = "P"

	// Bucket flags scope file operations to one bucket; its access key is resolved before any file call
	Bucket      = "bucket"
	BucketShort = "b"

	// Name overrides the stored file name on upload
	Name      = "name"
	NameShort = "n"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"

	// Output selects table, yaml or json rendering
	Output      = "output"
	OutputShort = "o"

	// MetricsFile writes request metrics in the Prometheus text format on exit
	MetricsFile = "metrics-file"
)
