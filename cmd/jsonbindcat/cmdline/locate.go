package cmdline

import (
	"fmt"
	"strconv"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/kaptinlin/jsonbind"
)

func newLocateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "locate <offset>",
		Short: "Print the path and line:col of a byte offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("jsonbindcat: invalid offset %q: %w", args[0], err)
			}

			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			stack := jsonbind.Locate(data, offset)
			path := jsonbind.FormatPath(stack)
			line, col := jsonbind.LineCol(data, offset)

			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", color.Cyan.Sprint("path: "), path)
			fmt.Fprintf(cmd.OutOrStdout(), "%s%d\n", color.Cyan.Sprint("line: "), line)
			fmt.Fprintf(cmd.OutOrStdout(), "%s%d\n", color.Cyan.Sprint("col: "), col)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "input file (default: stdin)")
	return cmd
}
