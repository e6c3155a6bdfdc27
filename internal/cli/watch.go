package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// WatchOptions holds the parsed flags for "watch".
type WatchOptions struct {
	GIRDirectories []string
	OutDir         string
	Environment    string
	BuildType      string
	Inheritance    bool
	InheritanceSet bool
	Verbose        bool
	ConfigPath     string
}

// WatchRunFunc is injected by the wiring layer.
type WatchRunFunc func(ctx context.Context, opts WatchOptions) error

// NewWatchCmd creates the "watch" subcommand.
func NewWatchCmd(runFunc WatchRunFunc) *cobra.Command {
	var opts WatchOptions

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate every namespace whenever a watched .gir document changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")
			opts.ConfigPath, _ = cmd.Flags().GetString("config")
			opts.InheritanceSet = cmd.Flags().Changed("inheritance")
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.GIRDirectories, "gir-dir", nil, "GIR search directory, repeatable, highest priority first")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "output directory for emitted declaration files")
	cmd.Flags().StringVar(&opts.Environment, "environment", "", "target environment: gjs or node")
	cmd.Flags().StringVar(&opts.BuildType, "build-type", "", "output mode: types (wraps declarations in a declare namespace) or lib")
	cmd.Flags().BoolVar(&opts.Inheritance, "inheritance", false, "switch classes to the interface-plus-constructor decomposition")

	return cmd
}
