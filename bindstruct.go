package jsonbind

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/kaptinlin/jsonbind/pkg/tagparser"
)

// BindOptions configures BindStruct's reflection over a Go struct type.
type BindOptions struct {
	TagName             string // struct tag read for binding rules (default "bind")
	AllowUntaggedFields bool   // include fields with no bind tag (default true — unlike tagged validation libraries, an untagged field is still a member)
	StrictUnknownMembers bool  // reject members the schema does not declare
}

// DefaultBindOptions returns jsonbind's defaults: every exported field
// participates, named by its json tag (falling back to the Go field
// name), unknown members are ignored rather than rejected.
func DefaultBindOptions() *BindOptions {
	return &BindOptions{TagName: "bind", AllowUntaggedFields: true}
}

func normalizeBindOptions(o *BindOptions) *BindOptions {
	if o == nil {
		return DefaultBindOptions()
	}
	cp := *o
	if cp.TagName == "" {
		cp.TagName = "bind"
	}
	return &cp
}

// structField is one reflected member: its struct index, binding
// metadata, and (for nested structs/slices) the child schema needed to
// recurse without a new generic instantiation — reflect.Value carries
// the runtime type, so the interpreter below never needs to know T at
// compile time past the BindStruct entry point.
type structField struct {
	index         int
	name          string
	nullable      bool // pointer field, or explicit "nullable" rule
	omitEmpty     bool
	defaultExpr   string
	converter     string
	elemSchema    *structSchema // set when this field (or its slice element) is itself a bound struct
	sliceOfStruct bool
}

// structSchema is the reflective analogue of ClassSchema[T]: built once
// per reflect.Type by reflectSchemaFor and cached for the lifetime of
// the process.
type structSchema struct {
	typ    reflect.Type
	fields []structField
	index  *nameIndex
}

var (
	schemaCacheMu sync.RWMutex
	schemaCache   = map[reflect.Type]*structSchema{}
)

// reflectSchemaFor builds (or returns the cached) structSchema for t,
// recursing into nested struct and []struct fields. A placeholder is
// inserted into the cache before fields are populated so a
// self-referential type (Node containing []*Node) terminates instead
// of recursing forever — the placeholder's fields slice is filled in
// before BindStruct hands control to any parser, so nothing ever
// observes it half-built.
func reflectSchemaFor(t reflect.Type, opts *BindOptions) (*structSchema, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("jsonbind: BindStruct requires a struct type, got %s", t.Kind())
	}

	schemaCacheMu.RLock()
	if s, ok := schemaCache[t]; ok {
		schemaCacheMu.RUnlock()
		return s, nil
	}
	schemaCacheMu.RUnlock()

	schemaCacheMu.Lock()
	if s, ok := schemaCache[t]; ok {
		schemaCacheMu.Unlock()
		return s, nil
	}
	placeholder := &structSchema{typ: t}
	schemaCache[t] = placeholder
	schemaCacheMu.Unlock()

	parser := tagparser.NewWithTagName(opts.TagName)
	infos, err := parser.ParseStructTags(t)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(infos))
	fields := make([]structField, 0, len(infos))
	for _, info := range infos {
		if info.Tag == "" && !opts.AllowUntaggedFields {
			continue
		}
		sf := structField{
			index:       fieldIndexByName(t, info.Name),
			name:        info.JSONName,
			nullable:    info.Nullable,
			omitEmpty:   info.OmitEmpty,
			defaultExpr: info.Default,
			converter:   info.Converter,
		}

		ft := info.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		switch {
		case ft.Kind() == reflect.Struct && ft != timeType:
			child, err := reflectSchemaFor(ft, opts)
			if err != nil {
				return nil, err
			}
			sf.elemSchema = child
		case ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Struct && ft.Elem() != timeType:
			child, err := reflectSchemaFor(ft.Elem(), opts)
			if err != nil {
				return nil, err
			}
			sf.elemSchema = child
			sf.sliceOfStruct = true
		case ft.Kind() == reflect.Slice && ft.Elem().Kind() == reflect.Ptr && ft.Elem().Elem().Kind() == reflect.Struct:
			child, err := reflectSchemaFor(ft.Elem().Elem(), opts)
			if err != nil {
				return nil, err
			}
			sf.elemSchema = child
			sf.sliceOfStruct = true
		}

		names = append(names, sf.name)
		fields = append(fields, sf)
	}

	placeholder.fields = fields
	placeholder.index = buildNameIndex(names)
	return placeholder, nil
}

func fieldIndexByName(t reflect.Type, name string) int {
	f, ok := t.FieldByName(name)
	if !ok {
		return -1
	}
	return f.Index[0]
}

var timeType = reflect.TypeOf(time.Time{})

// BindStruct builds (or reuses the cached) reflective binding for T and
// wraps it behind the generic Parse/Serialize contract every other
// schema kind in this package exposes, so callers never see the
// difference between a hand-written ClassSchema[T] and a struct
// discovered by tag reflection.
func BindStruct[T any](opts *BindOptions) (*StructBinding[T], error) {
	opts = normalizeBindOptions(opts)
	var zero T
	schema, err := reflectSchemaFor(reflect.TypeOf(zero), opts)
	if err != nil {
		return nil, err
	}
	return &StructBinding[T]{schema: schema, opts: opts}, nil
}

// StructBinding is BindStruct's return type: a reflective parser/
// serializer pair for one struct type T.
type StructBinding[T any] struct {
	schema *structSchema
	opts   *BindOptions
}

// Parse reads one JSON object into *v using the reflective schema.
func (b *StructBinding[T]) Parse(c *Cursor, v *T) error {
	return parseReflectClass(c, reflect.ValueOf(v).Elem(), b.schema, b.opts)
}

// Serialize writes *v as a JSON object using the reflective schema.
func (b *StructBinding[T]) Serialize(w *Writer, v *T) error {
	return serializeReflectClass(w, reflect.ValueOf(v).Elem(), b.schema)
}

func parseReflectClass(c *Cursor, rv reflect.Value, schema *structSchema, opts *BindOptions) error {
	if err := c.Consume('{'); err != nil {
		return err
	}
	if err := c.SkipWhitespace(); err != nil {
		return err
	}
	seen := make([]bool, len(schema.fields))
	first := true
	for {
		b, err := c.Peek()
		if err != nil {
			return newError(UnexpectedEndOfData, c.pos)
		}
		if b == '}' {
			c.pos++
			break
		}
		if !first {
			if err := c.Consume(','); err != nil {
				return err
			}
			if err := c.SkipWhitespace(); err != nil {
				return err
			}
		}
		first = false

		key, err := ParseStringRaw(c, true)
		if err != nil {
			return err
		}
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
		if err := c.Consume(':'); err != nil {
			return err
		}
		if err := c.SkipWhitespace(); err != nil {
			return err
		}

		fi := -1
		for i := range schema.fields {
			if schema.index.matches(i, key, schema.index.hasCollision) {
				fi = i
				break
			}
		}
		if fi == -1 {
			if opts.StrictUnknownMembers {
				return newError(UnknownMember, c.pos)
			}
			if _, err := SkipValue(c); err != nil {
				return err
			}
		} else if seen[fi] {
			// Duplicate key: parse to stay well-formed, first value wins.
			if _, err := SkipValue(c); err != nil {
				return err
			}
		} else {
			f := schema.fields[fi]
			fv := rv.Field(f.index)
			if err := parseReflectField(c, fv, &f, opts); err != nil {
				return err
			}
			seen[fi] = true
		}
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
	}

	for i, f := range schema.fields {
		if seen[i] {
			continue
		}
		if f.defaultExpr == "" {
			if !f.nullable {
				return newError(MissingMemberName, c.pos)
			}
			continue
		}
		val, err := ResolveDefault(f.defaultExpr)
		if err != nil {
			return err
		}
		assignDefault(rv.Field(f.index), val)
	}
	return nil
}

func parseReflectField(c *Cursor, fv reflect.Value, f *structField, opts *BindOptions) error {
	if f.converter != "" {
		return parseConvertedField(c, fv, f.converter)
	}
	if fv.Kind() == reflect.Ptr {
		if c.AtNull() {
			if err := ParseNull(c); err != nil {
				return err
			}
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return parseReflectField(c, fv.Elem(), &structField{elemSchema: f.elemSchema, sliceOfStruct: f.sliceOfStruct}, opts)
	}

	if f.elemSchema != nil && !f.sliceOfStruct {
		return parseReflectClass(c, fv, f.elemSchema, opts)
	}

	switch fv.Kind() {
	case reflect.Struct:
		if fv.Type() == timeType {
			s, err := ParseString(c)
			if err != nil {
				return err
			}
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return newError(InvalidString, c.pos)
			}
			fv.Set(reflect.ValueOf(t))
			return nil
		}
		return newError(ExpectedToken, c.pos)
	case reflect.Slice:
		return parseReflectSlice(c, fv, f, opts)
	case reflect.String:
		s, err := ParseString(c)
		if err != nil {
			return err
		}
		fv.SetString(s)
		return nil
	case reflect.Bool:
		v, err := ParseBool(c)
		if err != nil {
			return err
		}
		fv.SetBool(v)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := ParseInt[int64](c)
		if err != nil {
			return err
		}
		fv.SetInt(v)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := ParseInt[uint64](c)
		if err != nil {
			return err
		}
		fv.SetUint(v)
		return nil
	case reflect.Float32, reflect.Float64:
		v, err := ParseFloat[float64](c)
		if err != nil {
			return err
		}
		fv.SetFloat(v)
		return nil
	case reflect.Interface:
		v, err := decodeAny(c)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	default:
		return newError(ExpectedToken, c.pos)
	}
}

// parseConvertedField reads the cursor's current string value and
// assigns it through the named built-in Converter (converters.go),
// covering field types (uuid.UUID, *url.URL, []byte) the generic kind
// switch in parseReflectField has no native rule for.
func parseConvertedField(c *Cursor, fv reflect.Value, name string) error {
	conv, ok := converterFor(name)
	if !ok {
		return newError(ExpectedToken, c.pos)
	}
	s, err := ParseString(c)
	if err != nil {
		return err
	}
	val, err := conv.Decode(s)
	if err != nil {
		return newError(InvalidString, c.pos)
	}
	rv := reflect.ValueOf(val)
	if !rv.Type().AssignableTo(fv.Type()) {
		if !rv.Type().ConvertibleTo(fv.Type()) {
			return newError(InvalidString, c.pos)
		}
		rv = rv.Convert(fv.Type())
	}
	fv.Set(rv)
	return nil
}

// serializeConvertedField is parseConvertedField's write-side
// counterpart.
func serializeConvertedField(w *Writer, fv reflect.Value, name string) error {
	conv, ok := converterFor(name)
	if !ok {
		return newError(ExpectedToken, 0)
	}
	s, err := conv.Encode(fv.Interface())
	if err != nil {
		return err
	}
	return w.WriteString(s)
}

func parseReflectSlice(c *Cursor, fv reflect.Value, f *structField, opts *BindOptions) error {
	if err := c.Consume('['); err != nil {
		return err
	}
	if err := c.SkipWhitespace(); err != nil {
		return err
	}
	elemType := fv.Type().Elem()
	ef := &structField{elemSchema: f.elemSchema}
	out := reflect.MakeSlice(fv.Type(), 0, 0)
	first := true
	for {
		b, err := c.Peek()
		if err != nil {
			return newError(UnexpectedEndOfData, c.pos)
		}
		if b == ']' {
			c.pos++
			break
		}
		if !first {
			if err := c.Consume(','); err != nil {
				return err
			}
			if err := c.SkipWhitespace(); err != nil {
				return err
			}
		}
		first = false

		elem := reflect.New(elemType).Elem()
		if err := parseReflectField(c, elem, ef, opts); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
	}
	fv.Set(out)
	return nil
}

func serializeReflectClass(w *Writer, rv reflect.Value, schema *structSchema) error {
	if err := w.byte('{'); err != nil {
		return err
	}
	wrote := false
	for _, f := range schema.fields {
		fv := rv.Field(f.index)
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		if wrote {
			if err := w.byte(','); err != nil {
				return err
			}
		}
		if err := w.WriteName(f.name); err != nil {
			return err
		}
		if err := serializeReflectField(w, fv, &f); err != nil {
			return err
		}
		wrote = true
	}
	return w.byte('}')
}

func serializeReflectField(w *Writer, fv reflect.Value, f *structField) error {
	if f.converter != "" {
		return serializeConvertedField(w, fv, f.converter)
	}
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return WriteNull(w)
		}
		return serializeReflectField(w, fv.Elem(), f)
	}
	if f.elemSchema != nil && !f.sliceOfStruct {
		return serializeReflectClass(w, fv, f.elemSchema)
	}
	switch fv.Kind() {
	case reflect.Struct:
		if fv.Type() == timeType {
			return w.WriteString(fv.Interface().(time.Time).Format(time.RFC3339))
		}
		return fmt.Errorf("jsonbind: cannot serialize unbound struct type %s", fv.Type())
	case reflect.Slice:
		if err := w.byte('['); err != nil {
			return err
		}
		ef := &structField{elemSchema: f.elemSchema}
		for i := 0; i < fv.Len(); i++ {
			if i > 0 {
				if err := w.byte(','); err != nil {
					return err
				}
			}
			if err := serializeReflectField(w, fv.Index(i), ef); err != nil {
				return err
			}
		}
		return w.byte(']')
	case reflect.String:
		return w.WriteString(fv.String())
	case reflect.Bool:
		return WriteBool(w, fv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return WriteInt(w, fv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return WriteUint(w, fv.Uint())
	case reflect.Float32, reflect.Float64:
		return WriteFloat(w, fv.Float())
	case reflect.Interface:
		return encodeAny(w, fv.Interface())
	default:
		return fmt.Errorf("jsonbind: cannot serialize field kind %s", fv.Kind())
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.String:
		return v.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	}
	return false
}

func assignDefault(fv reflect.Value, val any) {
	rv := reflect.ValueOf(val)
	if fv.Kind() == reflect.Ptr {
		p := reflect.New(fv.Type().Elem())
		if rv.Type().ConvertibleTo(fv.Type().Elem()) {
			p.Elem().Set(rv.Convert(fv.Type().Elem()))
		}
		fv.Set(p)
		return
	}
	if rv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(rv.Convert(fv.Type()))
	}
}

// decodeAny materializes whatever value the cursor sits on as a plain
// Go value (string, float64, bool, nil, []any, map[string]any), for
// struct fields typed `any`/`interface{}` — the untyped escape hatch
// every schema-directed binder needs for payloads it cannot fully
// describe ahead of time.
func decodeAny(c *Cursor) (any, error) {
	b, err := c.Peek()
	if err != nil {
		return nil, newError(UnexpectedEndOfData, c.pos)
	}
	switch {
	case b == '{':
		return decodeAnyClass(c)
	case b == '[':
		return decodeAnyArray(c)
	case b == '"':
		return ParseString(c)
	case b == 't' || b == 'f':
		return ParseBool(c)
	case b == 'n':
		return nil, ParseNull(c)
	case b == '-' || isDigit(b):
		return ParseFloat[float64](c)
	default:
		return nil, newError(ExpectedToken, c.pos)
	}
}

func decodeAnyClass(c *Cursor) (map[string]any, error) {
	if err := c.Consume('{'); err != nil {
		return nil, err
	}
	if err := c.SkipWhitespace(); err != nil {
		return nil, err
	}
	out := make(map[string]any)
	first := true
	for {
		b, err := c.Peek()
		if err != nil {
			return nil, newError(UnexpectedEndOfData, c.pos)
		}
		if b == '}' {
			c.pos++
			return out, nil
		}
		if !first {
			if err := c.Consume(','); err != nil {
				return nil, err
			}
			if err := c.SkipWhitespace(); err != nil {
				return nil, err
			}
		}
		first = false
		key, err := ParseString(c)
		if err != nil {
			return nil, err
		}
		if err := c.SkipWhitespace(); err != nil {
			return nil, err
		}
		if err := c.Consume(':'); err != nil {
			return nil, err
		}
		if err := c.SkipWhitespace(); err != nil {
			return nil, err
		}
		val, err := decodeAny(c)
		if err != nil {
			return nil, err
		}
		out[key] = val
		if err := c.SkipWhitespace(); err != nil {
			return nil, err
		}
	}
}

func decodeAnyArray(c *Cursor) ([]any, error) {
	if err := c.Consume('['); err != nil {
		return nil, err
	}
	if err := c.SkipWhitespace(); err != nil {
		return nil, err
	}
	var out []any
	first := true
	for {
		b, err := c.Peek()
		if err != nil {
			return nil, newError(UnexpectedEndOfData, c.pos)
		}
		if b == ']' {
			c.pos++
			return out, nil
		}
		if !first {
			if err := c.Consume(','); err != nil {
				return nil, err
			}
			if err := c.SkipWhitespace(); err != nil {
				return nil, err
			}
		}
		first = false
		val, err := decodeAny(c)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
		if err := c.SkipWhitespace(); err != nil {
			return nil, err
		}
	}
}

func encodeAny(w *Writer, v any) error {
	switch x := v.(type) {
	case nil:
		return WriteNull(w)
	case string:
		return w.WriteString(x)
	case bool:
		return WriteBool(w, x)
	case float64:
		return WriteFloat(w, x)
	case int:
		return WriteInt(w, int64(x))
	case map[string]any:
		if err := w.byte('{'); err != nil {
			return err
		}
		i := 0
		for k, val := range x {
			if i > 0 {
				if err := w.byte(','); err != nil {
					return err
				}
			}
			if err := w.WriteName(k); err != nil {
				return err
			}
			if err := encodeAny(w, val); err != nil {
				return err
			}
			i++
		}
		return w.byte('}')
	case []any:
		if err := w.byte('['); err != nil {
			return err
		}
		for i, val := range x {
			if i > 0 {
				if err := w.byte(','); err != nil {
					return err
				}
			}
			if err := encodeAny(w, val); err != nil {
				return err
			}
		}
		return w.byte(']')
	default:
		return fmt.Errorf("jsonbind: cannot serialize dynamic value of type %T", v)
	}
}
