package jsonbind

import (
	"reflect"
	"sync"
)

// Binder is the top-level entry point (the renamed, repurposed
// Compiler): it owns the default Policy new Parse/Serialize calls run
// under, a registry of default-value functions (seeded with the
// built-ins from default_funcs.go), and the strict-unknown-member
// setting, which reaches the reflective struct parser through its
// BindOptions (the hand-written ParseClass takes its own flag
// argument instead). A *Binder is safe for concurrent use once
// constructed — Parse/Serialize calls never mutate it.
type Binder struct {
	policy               Policy
	strictUnknownMembers bool
	bindOpts             *BindOptions

	mu           sync.RWMutex
	defaultFuncs map[string]DefaultFunc
}

// BinderOption mutates a Binder during construction, mirroring the
// teacher's functional-option methods on Compiler.
type BinderOption func(*Binder)

// NewBinder builds a Binder with jsonbind's defaults (DefaultPolicy,
// StrictUnknownMembers=false, bind-tag name "bind") plus every
// registered option applied in order.
func NewBinder(opts ...BinderOption) *Binder {
	b := &Binder{
		policy:       DefaultPolicy(),
		bindOpts:     DefaultBindOptions(),
		defaultFuncs: make(map[string]DefaultFunc),
	}
	for name, fn := range defaultFuncs {
		b.defaultFuncs[name] = fn
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithPolicy overrides the Policy word Parse/Serialize calls use.
func WithPolicy(p Policy) BinderOption {
	return func(b *Binder) { b.policy = p }
}

// WithStrictUnknownMembers rejects (rather than ignores) an object key
// that matches no schema member, the supplement described in
// SPEC_FULL.md §4.1.
func WithStrictUnknownMembers(yes bool) BinderOption {
	return func(b *Binder) {
		b.strictUnknownMembers = yes
		b.bindOpts.StrictUnknownMembers = yes
	}
}

// WithTagName changes the struct tag BindStruct reads (default "bind").
func WithTagName(name string) BinderOption {
	return func(b *Binder) { b.bindOpts.TagName = name }
}

// WithDefaultFunc registers (or overrides) a named default-value
// function on this Binder only, leaving the package-wide registry in
// default_funcs.go untouched.
func WithDefaultFunc(name string, fn DefaultFunc) BinderOption {
	return func(b *Binder) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.defaultFuncs[name] = fn
	}
}

// Policy returns the Binder's configured Policy word.
func (b *Binder) Policy() Policy { return b.policy }

// bindingCacheMu/bindingCache memoize one StructBinding[T]
// per (Binder, reflect.Type) pair so repeated Parse[T] calls against the
// same Binder do not re-walk struct tags on every call — BindStruct
// already caches by type alone, but a Binder's StrictUnknownMembers /
// TagName overrides mean two Binders must not share a cached binding.
var bindingCacheMu sync.Mutex

type bindingCacheKey struct {
	binder *Binder
	typ    reflect.Type
}

var bindingCache = map[bindingCacheKey]any{}

func bindingFor[T any](b *Binder) (*StructBinding[T], error) {
	key := bindingCacheKey{binder: b, typ: reflect.TypeOf((*T)(nil)).Elem()}

	bindingCacheMu.Lock()
	if cached, ok := bindingCache[key]; ok {
		bindingCacheMu.Unlock()
		return cached.(*StructBinding[T]), nil
	}
	bindingCacheMu.Unlock()

	binding, err := BindStruct[T](b.bindOpts)
	if err != nil {
		return nil, err
	}

	bindingCacheMu.Lock()
	bindingCache[key] = binding
	bindingCacheMu.Unlock()
	return binding, nil
}

// Parse decodes one JSON value from data into a T using b's reflective
// struct binding, honoring path (a dotted/indexed selector per C8) to
// navigate to a nested value before binding it — an empty path binds
// the whole document.
func Parse[T any](b *Binder, data []byte, path string) (T, error) {
	var zero T
	binding, err := bindingFor[T](b)
	if err != nil {
		return zero, err
	}

	c := NewCursor(data, b.policy)
	if path != "" {
		if err := Navigate(c, ParsePathSelector(path)); err != nil {
			return zero, err
		}
	}

	var v T
	if err := binding.Parse(c, &v); err != nil {
		return zero, err
	}
	return v, nil
}

// ParseArrayInto decodes the JSON array found at path (the whole
// document, if path is empty) and returns a lazy Iterator over its
// elements, each bound via b's reflective struct binding. Named
// distinctly from the hand-schema ParseArray in array.go, which takes
// an explicit *ArraySchema[E] rather than a *Binder.
func ParseArrayInto[T any](b *Binder, data []byte, path string) (*Iterator[T], error) {
	binding, err := bindingFor[T](b)
	if err != nil {
		return nil, err
	}

	c := NewCursor(data, b.policy)
	if path != "" {
		if err := Navigate(c, ParsePathSelector(path)); err != nil {
			return nil, err
		}
	}

	schema := NewArraySchema(
		func(c *Cursor) (T, error) {
			var v T
			err := binding.Parse(c, &v)
			return v, err
		},
		func(w *Writer, v T) error { return binding.Serialize(w, &v) },
	)
	return NewIterator(c, schema)
}

// Serialize writes v to out as JSON using b's reflective struct
// binding.
func Serialize[T any](b *Binder, v T, out Sink) error {
	binding, err := bindingFor[T](b)
	if err != nil {
		return err
	}
	w := NewWriter(out, b.policy)
	return binding.Serialize(w, &v)
}
