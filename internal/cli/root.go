// Package cli builds the cobra command tree, following the teacher's
// core/cli package shape: one constructor per command, run logic
// injected from main.go rather than embedded in RunE closures, flag
// validation in PreRunE.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level girsurface command.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "girsurface",
		Short: "Generate target-surface type declarations from GObject Introspection data",
		Long:  "girsurface translates GIR XML documents into target-surface type declaration files, one per namespace.",
	}
	cmd.Version = version
	cmd.PersistentFlags().Bool("verbose", false, "enable debug-level diagnostics")
	cmd.PersistentFlags().Bool("json", false, "emit diagnostics as JSON")
	cmd.PersistentFlags().String("config", "", "path to an explicit config file")
	return cmd
}
