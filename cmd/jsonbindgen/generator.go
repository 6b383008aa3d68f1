// Code generation for jsonbindgen: turns the GenStruct/GenField
// descriptions the analyzer collects into a ClassSchema constructor
// function per struct, for fields whose kind maps directly onto one of
// jsonbind's primitive parsers. Fields of a kind the generator doesn't
// know how to emit (nested structs, slices, converters) are left out of
// the generated schema with a comment, on the assumption the caller
// either uses BindStruct for that type or hand-extends the generated
// function.
package main

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
)

// GeneratorConfig mirrors the flags main.go exposes.
type GeneratorConfig struct {
	OutputSuffix string
	PackageName  string
	Verbose      bool
	DryRun       bool
}

// CodeGenerator drives AnalyzePackage and emits one output file per
// input package containing a schema constructor per discovered struct.
type CodeGenerator struct {
	config *GeneratorConfig
}

func NewCodeGenerator(config *GeneratorConfig) *CodeGenerator {
	return &CodeGenerator{config: config}
}

// ProcessPackage analyzes pkgPath and writes (or, in dry-run mode,
// prints) the generated schema file.
func (g *CodeGenerator) ProcessPackage(pkgPath string) error {
	structs, err := AnalyzePackage(pkgPath)
	if err != nil {
		return err
	}
	if len(structs) == 0 {
		if g.config.Verbose {
			fmt.Printf("no bind-tagged structs found in %s\n", pkgPath)
		}
		return nil
	}

	pkgName := structs[0].Package
	if g.config.PackageName != "" {
		pkgName = g.config.PackageName
	}

	src := g.renderFile(pkgName, structs)
	formatted, err := format.Source([]byte(src))
	if err != nil {
		// Emit the unformatted source for debugging rather than failing
		// outright; a syntax mistake in one field's codegen shouldn't
		// block inspecting the rest of the file.
		formatted = []byte(src)
	}

	outPath := filepath.Join(pkgPath, "jsonbindgen"+g.config.OutputSuffix)
	if g.config.DryRun {
		fmt.Printf("// --- %s ---\n%s\n", outPath, formatted)
		return nil
	}
	return os.WriteFile(outPath, formatted, 0o644)
}

func (g *CodeGenerator) renderFile(pkgName string, structs []*GenStruct) string {
	var b strings.Builder
	b.WriteString("// Code generated by jsonbindgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	b.WriteString("import \"github.com/kaptinlin/jsonbind\"\n\n")

	for _, s := range structs {
		g.renderStruct(&b, s)
	}
	return b.String()
}

func (g *CodeGenerator) renderStruct(b *strings.Builder, s *GenStruct) {
	fmt.Fprintf(b, "func New%sClassSchema() *jsonbind.ClassSchema[%s] {\n", s.Name, s.Name)
	fmt.Fprintf(b, "\treturn jsonbind.NewClassSchema(\n")
	for _, f := range s.Fields {
		hooks, ok := primitiveHooks(f.TypeName)
		if !ok || f.Converter != "" {
			fmt.Fprintf(b, "\t\t// %s (%s) needs a hand-written or BindStruct-derived member\n", f.Name, f.TypeName)
			continue
		}
		fmt.Fprintf(b, "\t\tjsonbind.Member[%s]{\n", s.Name)
		fmt.Fprintf(b, "\t\t\tName: %q,\n", f.JSONName)
		if f.Nullable {
			fmt.Fprintf(b, "\t\t\tNullable: true,\n")
		}
		if f.Default != "" {
			fmt.Fprintf(b, "\t\t\tDefault: %q,\n", f.Default)
		}
		fmt.Fprintf(b, "\t\t\tParse: func(c *jsonbind.Cursor, v *%s) error {\n", s.Name)
		fmt.Fprintf(b, "\t\t\t\tval, err := %s\n", hooks.parseExpr)
		fmt.Fprintf(b, "\t\t\t\tif err != nil {\n\t\t\t\t\treturn err\n\t\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\t\tv.%s = val\n", f.Name)
		fmt.Fprintf(b, "\t\t\t\treturn nil\n\t\t\t},\n")
		fmt.Fprintf(b, "\t\t\tSerialize: func(w *jsonbind.Writer, v *%s) error {\n", s.Name)
		fmt.Fprintf(b, "\t\t\t\treturn %s\n", fmt.Sprintf(hooks.serializeExpr, "v."+f.Name))
		fmt.Fprintf(b, "\t\t\t},\n")
		b.WriteString("\t\t},\n")
	}
	b.WriteString("\t)\n}\n\n")
}

type fieldHooks struct {
	parseExpr     string // evaluates to (val, err)
	serializeExpr string // %s template taking the field expression
}

func primitiveHooks(typeName string) (fieldHooks, bool) {
	switch typeName {
	case "string":
		return fieldHooks{"jsonbind.ParseString(c)", "w.WriteString(%s)"}, true
	case "bool":
		return fieldHooks{"jsonbind.ParseBool(c)", "jsonbind.WriteBool(w, %s)"}, true
	case "int", "int8", "int16", "int32", "int64":
		return fieldHooks{
			fmt.Sprintf("jsonbind.ParseInt[%s](c)", typeName),
			"jsonbind.WriteInt(w, %s)",
		}, true
	case "uint", "uint8", "uint16", "uint32", "uint64":
		return fieldHooks{
			fmt.Sprintf("jsonbind.ParseInt[%s](c)", typeName),
			"jsonbind.WriteUint(w, %s)",
		}, true
	case "float32", "float64":
		return fieldHooks{
			fmt.Sprintf("jsonbind.ParseFloat[%s](c)", typeName),
			"jsonbind.WriteFloat(w, %s)",
		}, true
	default:
		return fieldHooks{}, false
	}
}
