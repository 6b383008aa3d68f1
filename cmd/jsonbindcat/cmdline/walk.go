package cmdline

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/kaptinlin/jsonbind"
)

// traceHandler implements jsonbind.Handler by printing one colorized
// line per callback, indented by nesting depth.
type traceHandler struct {
	out   io.Writer
	depth int
}

func (h *traceHandler) label(name string, index int) string {
	switch {
	case index >= 0:
		return fmt.Sprintf("[%d]", index)
	case name != "":
		return fmt.Sprintf(".%s", name)
	default:
		return "."
	}
}

func (h *traceHandler) indent() string {
	out := ""
	for i := 0; i < h.depth; i++ {
		out += "  "
	}
	return out
}

func (h *traceHandler) OnClassStart(name string, index int) bool {
	fmt.Fprintf(h.out, "%s\n", color.Cyan.Sprintf("%s{ %s", h.indent(), h.label(name, index)))
	h.depth++
	return true
}

func (h *traceHandler) OnClassEnd() bool {
	h.depth--
	fmt.Fprintf(h.out, "%s\n", color.Cyan.Sprintf("%s}", h.indent()))
	return true
}

func (h *traceHandler) OnArrayStart(name string, index int) bool {
	fmt.Fprintf(h.out, "%s\n", color.Yellow.Sprintf("%s[ %s", h.indent(), h.label(name, index)))
	h.depth++
	return true
}

func (h *traceHandler) OnArrayEnd() bool {
	h.depth--
	fmt.Fprintf(h.out, "%s\n", color.Yellow.Sprintf("%s]", h.indent()))
	return true
}

func (h *traceHandler) OnScalar(name string, index int, kind jsonbind.ValueKind, raw []byte) bool {
	fmt.Fprintf(h.out, "%s\n", color.Green.Sprintf("%s%s %s = %s", h.indent(), kindLabel(kind), h.label(name, index), raw))
	return true
}

func newWalkCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Trace every value the event walker visits",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			h := &traceHandler{out: cmd.OutOrStdout()}
			if err := jsonbind.Walk(data, h, jsonbind.DefaultPolicy()); err != nil {
				printError(cmd, data, err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "input file (default: stdin)")
	return cmd
}
