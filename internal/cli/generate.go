package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// GenerateOptions holds the parsed flags for "generate".
type GenerateOptions struct {
	GIRDirectories []string
	OutDir         string
	Environment    string
	BuildType      string
	Inheritance    bool
	InheritanceSet bool
	Namespace      string
	Verbose        bool
	ConfigPath     string
}

// GenerateRunFunc is injected by the wiring layer (cmd/girsurface/main.go).
type GenerateRunFunc func(ctx context.Context, opts GenerateOptions) error

// NewGenerateCmd creates the "generate" subcommand.
func NewGenerateCmd(runFunc GenerateRunFunc) *cobra.Command {
	var opts GenerateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate declaration files for every discovered namespace",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateGenerateFlags(opts)
		},
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
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "", "restrict generation to a single namespace")

	return cmd
}

func validateGenerateFlags(opts GenerateOptions) error {
	if opts.Environment != "" && opts.Environment != "gjs" && opts.Environment != "node" {
		return fmt.Errorf("--environment must be \"gjs\" or \"node\", got %q", opts.Environment)
	}
	if opts.BuildType != "" && opts.BuildType != "types" && opts.BuildType != "lib" {
		return fmt.Errorf("--build-type must be \"types\" or \"lib\", got %q", opts.BuildType)
	}
	return nil
}
