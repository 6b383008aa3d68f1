// Command jsonbindgen generates ClassSchema constructor functions for Go
// structs tagged with `bind`, so a caller can hand-write a fast,
// generics-based binding for a type instead of relying on BindStruct's
// reflective path.
//
// Usage:
//
//	jsonbindgen [flags] [packages...]
//
// Flags:
//
//	-suffix string     Output file suffix (default: "_bindschema.go")
//	-package string    Specify package name (default: auto-detect)
//	-verbose           Verbose output
//	-dry-run           Preview generated code without writing files
package main

import (
	"flag"
	"fmt"
	"log"
)

var (
	outputSuffix = flag.String("suffix", "_bindschema.go", "Output file suffix")
	packageName  = flag.String("package", "", "Specify package name (default: auto-detect)")
	verbose      = flag.Bool("verbose", false, "Verbose output")
	dryRun       = flag.Bool("dry-run", false, "Preview generated code without writing files")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	packages := flag.Args()
	if len(packages) == 0 {
		packages = []string{"."}
	}

	config := &GeneratorConfig{
		OutputSuffix: *outputSuffix,
		PackageName:  *packageName,
		Verbose:      *verbose,
		DryRun:       *dryRun,
	}

	generator := NewCodeGenerator(config)

	var hasErrors bool
	for _, pkg := range packages {
		if *verbose {
			log.Printf("processing package: %s", pkg)
		}
		if err := generator.ProcessPackage(pkg); err != nil {
			log.Printf("error processing package %s: %v", pkg, err)
			hasErrors = true
			continue
		}
	}

	if hasErrors {
		log.Fatalf("code generation completed with errors")
	}
}

func showHelp() {
	fmt.Println(`jsonbindgen - generates ClassSchema constructors from bind tags

USAGE:
    jsonbindgen [flags] [packages...]

FLAGS:`)
	flag.PrintDefaults()
	fmt.Println(`
EXAMPLES:
    jsonbindgen ./models
    jsonbindgen -dry-run -verbose ./models

DIRECTIVES:
    Add //go:generate jsonbindgen to a file containing bind-tagged
    structs to regenerate their schema constructors via 'go generate'.`)
}
