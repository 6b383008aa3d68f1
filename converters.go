package jsonbind

import (
	"encoding/base64"
	"net/url"

	"github.com/google/uuid"
)

// Converter adapts a JSON string to and from a Go value BindStruct's
// reflective field binder cannot type-switch its way to directly — the
// C5 schema's escape hatch for "this member's wire representation isn't
// its Go representation", repurposed from a contentEncoding-style
// concept into a fixed set of named, built-in transforms rather than a
// pluggable per-schema registry, since jsonbind's tag vocabulary names a
// converter by a fixed identifier (`converter=base64`) rather than a
// compiler-registered string key.
type Converter struct {
	// Decode turns the raw string the cursor parsed into the field's
	// native value.
	Decode func(s string) (any, error)
	// Encode turns the field's native value back into the string the
	// serializer writes.
	Encode func(v any) (string, error)
}

var converters = map[string]Converter{
	"base64": {
		Decode: func(s string) (any, error) {
			return base64.StdEncoding.DecodeString(s)
		},
		Encode: func(v any) (string, error) {
			b, ok := v.([]byte)
			if !ok {
				return "", errConverterTypeFor("base64", v)
			}
			return base64.StdEncoding.EncodeToString(b), nil
		},
	},
	"url": {
		Decode: func(s string) (any, error) {
			return url.Parse(s)
		},
		Encode: func(v any) (string, error) {
			u, ok := v.(*url.URL)
			if !ok {
				return "", errConverterTypeFor("url", v)
			}
			return u.String(), nil
		},
	},
	"uuid": {
		Decode: func(s string) (any, error) {
			return uuid.Parse(s)
		},
		Encode: func(v any) (string, error) {
			id, ok := v.(uuid.UUID)
			if !ok {
				return "", errConverterTypeFor("uuid", v)
			}
			return id.String(), nil
		},
	},
}

func errConverterTypeFor(name string, v any) error {
	return &converterTypeError{name: name, got: v}
}

type converterTypeError struct {
	name string
	got  any
}

func (e *converterTypeError) Error() string {
	return "jsonbind: converter " + e.name + " cannot encode value of this type"
}

// converterFor looks up one of the built-in converters by name, as used
// by a `bind:"converter=base64"` struct tag.
func converterFor(name string) (Converter, bool) {
	c, ok := converters[name]
	return c, ok
}
