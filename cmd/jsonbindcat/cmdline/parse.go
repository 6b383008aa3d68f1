package cmdline

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/kaptinlin/jsonbind"
)

func newParseCmd() *cobra.Command {
	var path string
	var file string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print the raw JSON value at a dotted/indexed path selector",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}

			c := jsonbind.NewCursor(data, jsonbind.DefaultPolicy())
			if path != "" {
				if err := jsonbind.Navigate(c, jsonbind.ParsePathSelector(path)); err != nil {
					printError(cmd, data, err)
					return err
				}
			}

			start := c.Pos()
			kind, err := jsonbind.SkipValue(c)
			if err != nil {
				printError(cmd, data, err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.Gray.Sprint(kindLabel(kind)), data[start:c.Pos()])
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "dotted/indexed selector, e.g. a.b[3]")
	cmd.Flags().StringVar(&file, "file", "", "input file (default: stdin)")
	return cmd
}

func kindLabel(k jsonbind.ValueKind) string {
	switch k {
	case jsonbind.KindClass:
		return "class"
	case jsonbind.KindArray:
		return "array"
	case jsonbind.KindString:
		return "string"
	case jsonbind.KindNumber:
		return "number"
	case jsonbind.KindBool:
		return "bool"
	case jsonbind.KindNull:
		return "null"
	default:
		return "unknown"
	}
}

func printError(cmd *cobra.Command, data []byte, err error) {
	msg := color.Red.Sprintf("%v", err)
	if je, ok := err.(*jsonbind.Error); ok {
		stack := jsonbind.Locate(data, je.Offset)
		path := jsonbind.FormatPath(stack)
		line, col := jsonbind.LineCol(data, je.Offset)
		msg += color.Gray.Sprintf(" (path %s, line %d, col %d)", path, line, col)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
}
