// Package cmdline implements jsonbindcat's cobra commands.
package cmdline

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)



// NewRootCmd creates the root jsonbindcat command with every
// subcommand registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jsonbindcat",
		Short:         "jsonbindcat - inspect how jsonbind sees a JSON document",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newWalkCmd())
	root.AddCommand(newLocateCmd())
	return root
}

// readInput reads path's contents, or cmd's stdin if path is "" or "-" —
// reading through cmd.InOrStdin rather than os.Stdin directly so tests
// can supply input via cmd.SetIn.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
