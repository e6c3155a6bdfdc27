package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// ListNamespacesOptions holds the parsed flags for "list-namespaces".
type ListNamespacesOptions struct {
	GIRDirectories []string
}

// ListNamespacesRunFunc is injected by the wiring layer.
type ListNamespacesRunFunc func(ctx context.Context, opts ListNamespacesOptions) error

// NewListNamespacesCmd creates the "list-namespaces" subcommand (§4
// SUPPLEMENTED FEATURES).
func NewListNamespacesCmd(runFunc ListNamespacesRunFunc) *cobra.Command {
	var opts ListNamespacesOptions

	cmd := &cobra.Command{
		Use:   "list-namespaces",
		Short: "List every namespace/version pair resolved from the GIR search path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.GIRDirectories, "gir-dir", nil, "GIR search directory, repeatable, highest priority first")

	return cmd
}
