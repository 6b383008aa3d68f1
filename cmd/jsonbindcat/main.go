// Command jsonbindcat is a small diagnostic CLI over jsonbind's event
// walker and path locator: it reads a JSON document from stdin (or a
// file argument) and exposes parse/walk/locate as subcommands, for
// interactively inspecting how the scanner sees a document without
// writing a Go program.
package main

import (
	"fmt"
	"os"

	"github.com/kaptinlin/jsonbind/cmd/jsonbindcat/cmdline"
)

func main() {
	if err := cmdline.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
