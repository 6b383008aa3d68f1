package jsonbind

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// yamlMemberSpec is one entry of a YAML-declared schema document, e.g.:
//
//	members:
//	  - name: id
//	    kind: string
//	  - name: tags
//	    kind: array
//	    nullable: true
//	  - name: profile
//	    kind: class
type yamlMemberSpec struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Nullable bool   `yaml:"nullable"`
	Default  string `yaml:"default"`
}

type yamlSchemaDoc struct {
	Members []yamlMemberSpec `yaml:"members"`
}

// BindYAML builds a class schema from a YAML document describing member
// names, kinds, and nullability — the fallback path for when the target
// shape isn't known as a static Go type at compile time (C5's
// tagged-variant alternative to BindStruct's monomorphized reflection).
// The bound native type is always map[string]any: each member's value is
// decoded per its declared kind and stored under its name.
func BindYAML(doc []byte) (*ClassSchema[map[string]any], error) {
	var spec yamlSchemaDoc
	if err := yaml.Unmarshal(doc, &spec); err != nil {
		return nil, fmt.Errorf("jsonbind: BindYAML: %w", err)
	}

	members := make([]Member[map[string]any], 0, len(spec.Members))
	for _, m := range spec.Members {
		parseFn, serializeFn, err := yamlKindHooks(m.Kind)
		if err != nil {
			return nil, fmt.Errorf("jsonbind: BindYAML member %q: %w", m.Name, err)
		}
		name := m.Name
		members = append(members, Member[map[string]any]{
			Name:     name,
			Nullable: m.Nullable,
			Default:  m.Default,
			Parse: func(c *Cursor, v *map[string]any) error {
				val, err := parseFn(c)
				if err != nil {
					return err
				}
				(*v)[name] = val
				return nil
			},
			Serialize: func(w *Writer, v *map[string]any) error {
				return serializeFn(w, (*v)[name])
			},
			Omit: func(v *map[string]any) bool {
				val, ok := (*v)[name]
				return !ok || val == nil
			},
			ApplyDefault: func(v *map[string]any, resolved any) error {
				(*v)[name] = resolved
				return nil
			},
		})
	}
	return NewClassSchema(members...), nil
}

func yamlKindHooks(kind string) (func(*Cursor) (any, error), func(*Writer, any) error, error) {
	switch kind {
	case "", "any":
		return decodeAny, encodeAny, nil
	case "string":
		return func(c *Cursor) (any, error) { return ParseString(c) },
			func(w *Writer, v any) error { return w.WriteString(v.(string)) }, nil
	case "number":
		return func(c *Cursor) (any, error) { return ParseFloat[float64](c) },
			func(w *Writer, v any) error { return WriteFloat(w, v.(float64)) }, nil
	case "bool":
		return func(c *Cursor) (any, error) { return ParseBool(c) },
			func(w *Writer, v any) error { return WriteBool(w, v.(bool)) }, nil
	case "array":
		return func(c *Cursor) (any, error) { return decodeAnyArray(c) },
			encodeAny, nil
	case "class":
		return func(c *Cursor) (any, error) { return decodeAnyClass(c) },
			encodeAny, nil
	default:
		return nil, nil, fmt.Errorf("unrecognized kind %q", kind)
	}
}
