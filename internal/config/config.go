// Package config builds the cobra root command for the lr35902
// driver: the ROM path flag, a repeatable verbosity flag, and a
// --max-steps bound for deterministic runs.
package config

import "github.com/spf13/cobra"

// Options holds the parsed CLI flags.
type Options struct {
	ROMPath   string
	Verbosity int
	MaxSteps  int
}

// NewRootCommand builds the "lr35902" root command. run is invoked
// with the parsed Options once flags are bound; its error return
// becomes the command's error, which main translates to exit code 1.
func NewRootCommand(run func(Options) error) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:           "lr35902",
		Short:         "Fetch/decode/execute loop for the Sharp LR35902",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ROMPath, "rom", "r", "", "path to the ROM image (required)")
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "raise the log level (repeatable: -v debug, -vv trace)")
	flags.IntVar(&opts.MaxSteps, "max-steps", 0, "bound the emulation loop to n steps (0 = unbounded)")

	cobra.CheckErr(cmd.MarkFlagRequired("rom"))

	return cmd
}
