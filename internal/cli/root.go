package cli

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Workers  int    // <= 0 is relative to the available cores
	Stages   int
	Progress bool
	Config   string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// defaultProgressStages is the stage count used when --progress is given
// without --stages.
const defaultProgressStages = 10

// newRunID returns the id attached to a command's output.
var newRunID = func() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewRootCommand creates the root command for the mrpool CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mrpool",
		Short: "mrpool - parallel map/reduce over a worker pool",
		Long: `Run map/reduce workflows over text files on a fixed pool of workers.

Inputs are split into one part per worker; large inputs can be processed in
stages with a progress bar tracking each completed stage.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Subcommands silence cobra's error output, so report here.
			if err := prepareOptions(cmd, opts); err != nil {
				_, _ = textRed.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().IntVarP(&opts.Workers, "workers", "w", 0, "number of workers (<= 0 is relative to the available cores)")
	cmd.PersistentFlags().IntVarP(&opts.Stages, "stages", "s", 0, "number of stages to process the input in (0 for a single pass)")
	cmd.PersistentFlags().BoolVar(&opts.Progress, "progress", false, "show a progress bar over stages")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "YAML file with default flag values")

	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))

	return cmd
}

// prepareOptions applies the config file and validates the global flags.
func prepareOptions(cmd *cobra.Command, opts *RootOptions) error {
	if opts.Config != "" {
		cfg, err := LoadConfig(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid config", err)
		}
		cfg.Apply(cmd, opts)
	}

	if !slices.Contains(ValidFormats, opts.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}
	if opts.Stages < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid stage count %d", opts.Stages))
	}
	return nil
}

// newFormatter builds the formatter for one command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		RunID:     newRunID(),
	}
}

// stages resolves the stage count for a workflow.
func (o *RootOptions) stages() int {
	if o.Stages == 0 && o.Progress {
		return defaultProgressStages
	}
	return o.Stages
}
