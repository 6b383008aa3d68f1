// Package tagparser parses the struct tags BindStruct uses to build a
// class schema from a Go type: the JSON member name, whether the field
// is nullable, an optional default-value function reference, and an
// optional named converter. It started life as a JSON-Schema
// validation-keyword tag parser and keeps that parser's tolerance for
// quoted, comma- and paren-bearing parameter values, retargeted at a
// much smaller rule vocabulary.
package tagparser

import (
	"reflect"
	"strings"
)

// TagParser parses a configurable tag name (default "bind") into
// FieldInfo records.
type TagParser struct {
	tagName string
}

// New creates a TagParser reading the default "bind" tag.
func New() *TagParser {
	return &TagParser{tagName: "bind"}
}

// NewWithTagName creates a TagParser reading a caller-chosen tag name.
func NewWithTagName(tagName string) *TagParser {
	return &TagParser{tagName: tagName}
}

// FieldInfo is one exported struct field's parsed binding metadata.
type FieldInfo struct {
	Name      string       // Go field name
	Type      reflect.Type // Go field type
	TypeName  string       // string form of Type, for diagnostics/codegen
	JSONName  string       // member name (from json tag, else field name)
	Tag       string       // raw bind tag value
	Rules     []TagRule    // parsed rule list
	Skip      bool         // bind:"-"
	Nullable  bool         // pointer field, or explicit "nullable" rule
	OmitEmpty bool         // "omitempty" rule: omit from output when empty
	Default   string       // default="expr" rule's expr, e.g. "uuid()"
	Converter string       // converter="name" rule's name
}

// ParseStructTags parses every exported field of structType (a struct
// or pointer-to-struct) into FieldInfo records, in declaration order.
func (p *TagParser) ParseStructTags(structType reflect.Type) ([]FieldInfo, error) {
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, nil
	}

	var fields []FieldInfo
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		bindTag := field.Tag.Get(p.tagName)
		if bindTag == "-" {
			continue
		}

		info := FieldInfo{
			Name:     field.Name,
			Type:     field.Type,
			TypeName: typeToString(field.Type),
			JSONName: jsonNameOf(field, p.tagName),
			Tag:      bindTag,
		}

		if bindTag != "" {
			rules, err := p.ParseTagString(bindTag)
			if err != nil {
				return nil, err
			}
			info.Rules = rules
			applyRules(&info, rules)
		}

		if field.Type.Kind() == reflect.Ptr {
			info.Nullable = true
		}

		fields = append(fields, info)
	}
	return fields, nil
}

// TagRule is one comma-separated element of a bind tag, e.g.
// `default=uuid()` parses to {Name: "default", Params: ["uuid()"]}.
type TagRule struct {
	Name   string
	Params []string
}

var validRuleNames = map[string]bool{
	"omitempty": true,
	"always":    true,
	"nullable":  true,
	"default":   true,
	"converter": true,
}

func applyRules(info *FieldInfo, rules []TagRule) {
	for _, r := range rules {
		switch r.Name {
		case "omitempty":
			info.OmitEmpty = true
		case "nullable":
			info.Nullable = true
		case "default":
			if len(r.Params) > 0 {
				info.Default = r.Params[0]
			}
		case "converter":
			if len(r.Params) > 0 {
				info.Converter = r.Params[0]
			}
		}
	}
}

// ParseTagString parses a single bind tag string into its rule list.
func (p *TagParser) ParseTagString(tag string) ([]TagRule, error) {
	var rules []TagRule
	if tag == "" {
		return rules, nil
	}
	for _, part := range parseTagParts(tag) {
		rule := parseTagRule(strings.TrimSpace(part))
		if rule.Name != "" {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// parseTagParts splits a tag on commas, ignoring commas nested inside
// quotes or parens — so `default=rfc3339(),omitempty` splits in two,
// but a converter argument like `converter="a,b"` does not split on its
// internal comma.
func parseTagParts(tag string) []string {
	var parts []string
	var current strings.Builder
	var parenDepth int
	var inQuotes bool
	var quoteChar rune
	escaped := false

	for _, char := range tag {
		switch char {
		case '\\':
			current.WriteRune(char)
			escaped = true
			continue
		case '"', '\'':
			if !escaped {
				if !inQuotes {
					inQuotes = true
					quoteChar = char
				} else if char == quoteChar {
					inQuotes = false
				}
			}
		case '(':
			if !inQuotes {
				parenDepth++
			}
		case ')':
			if !inQuotes && parenDepth > 0 {
				parenDepth--
			}
		case ',':
			if !escaped && !inQuotes && parenDepth == 0 {
				parts = append(parts, current.String())
				current.Reset()
				escaped = false
				continue
			}
		}
		current.WriteRune(char)
		escaped = false
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func parseTagRule(part string) TagRule {
	if part == "" {
		return TagRule{}
	}
	idx := strings.Index(part, "=")
	if idx == -1 {
		return TagRule{Name: strings.TrimSpace(part)}
	}
	name := strings.TrimSpace(part[:idx])
	paramStr := strings.TrimSpace(part[idx+1:])
	if len(paramStr) >= 2 && (paramStr[0] == '\'' || paramStr[0] == '"') && paramStr[len(paramStr)-1] == paramStr[0] {
		paramStr = unescapeString(paramStr[1 : len(paramStr)-1])
	}
	var params []string
	if paramStr != "" {
		params = []string{paramStr}
	}
	return TagRule{Name: name, Params: params}
}

func unescapeString(s string) string {
	s = strings.ReplaceAll(s, `\,`, ",")
	s = strings.ReplaceAll(s, `\'`, "'")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// jsonNameOf resolves a field's member name: the json tag if present
// (honoring its own "-"/omitempty conventions), else the bind tag's
// bare name form isn't supported (bind carries rules, not the name), so
// the fallback is the Go field name.
func jsonNameOf(field reflect.StructField, _ string) string {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" || jsonTag == "-" {
		return field.Name
	}
	if idx := strings.Index(jsonTag, ","); idx != -1 {
		if name := strings.TrimSpace(jsonTag[:idx]); name != "" {
			return name
		}
		return field.Name
	}
	return strings.TrimSpace(jsonTag)
}

func typeToString(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + typeToString(t.Elem())
	case reflect.Slice:
		return "[]" + typeToString(t.Elem())
	case reflect.Array:
		return "[N]" + typeToString(t.Elem())
	case reflect.Map:
		return "map[" + typeToString(t.Key()) + "]" + typeToString(t.Elem())
	case reflect.Struct:
		if t.Name() != "" {
			if pkg := t.PkgPath(); pkg != "" {
				if i := strings.LastIndex(pkg, "/"); i >= 0 {
					pkg = pkg[i+1:]
				}
				return pkg + "." + t.Name()
			}
			return t.Name()
		}
		return "struct{}"
	default:
		if t.PkgPath() == "" {
			return t.Name()
		}
		pkg := t.PkgPath()
		if i := strings.LastIndex(pkg, "/"); i >= 0 {
			pkg = pkg[i+1:]
		}
		return pkg + "." + t.Name()
	}
}

// IsValidRule reports whether name is a recognized bind-tag rule;
// exported for callers (e.g. a future lint tool) that want to flag
// typos in struct tags before they silently no-op.
func IsValidRule(name string) bool { return validRuleNames[name] }
