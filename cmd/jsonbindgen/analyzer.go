// AST analysis for jsonbindgen: finds bind-tagged structs in a package
// and extracts the per-field information the generator needs. This
// can't reuse pkg/tagparser directly — that package reflects over a
// live reflect.Type, but a code generator runs before its target
// package is built, so it has only the AST to work from.
package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"
)

// GenField is one exported struct field discovered by AST analysis.
type GenField struct {
	Name      string
	TypeName  string
	JSONName  string
	Nullable  bool
	OmitEmpty bool
	Default   string
	Converter string
}

// GenStruct is one struct type discovered in a package, with enough
// information to emit a ClassSchema[T] constructor for it.
type GenStruct struct {
	Name    string
	Package string
	Fields  []GenField
}

// AnalyzePackage parses every non-test Go file under pkgPath and
// returns the bind-tagged structs it finds.
func AnalyzePackage(pkgPath string) ([]*GenStruct, error) {
	fset := token.NewFileSet()
	astPkgs, err := parser.ParseDir(fset, pkgPath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("jsonbindgen: parse %s: %w", pkgPath, err)
	}

	var out []*GenStruct
	for pkgName, astPkg := range astPkgs {
		if strings.HasSuffix(pkgName, "_test") {
			continue
		}
		for _, file := range astPkg.Files {
			out = append(out, analyzeFile(file, pkgName)...)
		}
	}
	return out, nil
}

func analyzeFile(file *ast.File, pkgName string) []*GenStruct {
	var structs []*GenStruct
	ast.Inspect(file, func(n ast.Node) bool {
		genDecl, ok := n.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			return true
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}
			if !ast.IsExported(typeSpec.Name.Name) {
				continue
			}
			fields := analyzeFields(structType)
			if len(fields) == 0 {
				continue
			}
			structs = append(structs, &GenStruct{
				Name:    typeSpec.Name.Name,
				Package: pkgName,
				Fields:  fields,
			})
		}
		return true
	})
	return structs
}

func analyzeFields(structType *ast.StructType) []GenField {
	var fields []GenField
	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded fields are out of scope for generated schemas
		}
		name := field.Names[0].Name
		if !ast.IsExported(name) {
			continue
		}

		typeName := typeString(field.Type)
		jsonName := name
		var bindTag string
		if field.Tag != nil {
			raw := strings.Trim(field.Tag.Value, "`")
			tag := reflect.StructTag(raw)
			bindTag = tag.Get("bind")
			if jt := tag.Get("json"); jt != "" && jt != "-" {
				if name, _, _ := strings.Cut(jt, ","); name != "" {
					jsonName = name
				}
			}
		}
		if bindTag == "-" {
			continue
		}

		gf := GenField{Name: name, TypeName: typeName, JSONName: jsonName}
		if strings.HasPrefix(typeName, "*") {
			gf.Nullable = true
		}
		for _, rule := range strings.Split(bindTag, ",") {
			rule = strings.TrimSpace(rule)
			switch {
			case rule == "omitempty":
				gf.OmitEmpty = true
			case rule == "nullable":
				gf.Nullable = true
			case strings.HasPrefix(rule, "default="):
				gf.Default = strings.TrimPrefix(rule, "default=")
			case strings.HasPrefix(rule, "converter="):
				gf.Converter = strings.TrimPrefix(rule, "converter=")
			}
		}
		fields = append(fields, gf)
	}
	return fields
}

func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.ArrayType:
		return "[]" + typeString(t.Elt)
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.InterfaceType:
		return "any"
	default:
		return "any"
	}
}
