package jsonbind

// Member describes one compile-time-known slot of a class schema (C5): a
// JSON object key, bound to a getter/setter pair on the native type T via
// closures captured once when the schema is built (by BindYAML, by a
// jsonbindgen-generated constructor, or by hand) rather than re-derived
// by reflection on every parse call. BindStruct does not build Members;
// it uses its own reflective schema.
//
// An empty Name marks a positional member (rare; reserved for tuple-like
// class schemas). Parse and Serialize are never both nil.
type Member[T any] struct {
	Name          string
	Nullable      bool
	AlwaysInclude bool // emit `null` for an empty nullable member instead of omitting it
	Parse         func(*Cursor, *T) error
	Serialize     func(w *Writer, v *T) error

	// Default, when non-empty, is a bind-tag-style expression (e.g.
	// "uuid()") resolved via ResolveDefault and applied through
	// ApplyDefault when the member is absent from the document.
	// ApplyDefault must be non-nil whenever Default is set.
	Default      string
	ApplyDefault func(v *T, resolved any) error

	// Omit, when non-nil, is consulted by SerializeClass before a member
	// is written at all: a true result skips both the name and the
	// value. Required/non-nullable members leave this nil (never
	// omitted); nullable members set it to report their empty state,
	// unless AlwaysInclude is set, in which case Omit is nil and
	// Serialize itself writes `null`.
	Omit func(*T) bool
}

// ClassSchema is the compile-time description of a JSON object's
// expected members, queried by the class parser (C6) and the serializer
// (C11). Construction computes the member name index once; nothing in
// ClassSchema changes after NewClassSchema returns, so a *ClassSchema[T]
// is safe to share across concurrent parse calls.
type ClassSchema[T any] struct {
	Members []Member[T]
	index   *nameIndex
}

// NewClassSchema builds a class schema from an ordered member list,
// computing the FNV-1a name index (and detecting hash collisions) once.
func NewClassSchema[T any](members ...Member[T]) *ClassSchema[T] {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return &ClassSchema[T]{Members: members, index: buildNameIndex(names)}
}

// ForceFullNameCheck reports whether this schema's member names collide
// under the FNV-1a hash, in which case the class parser must fall back
// to full string comparison regardless of the caller's policy.
func (s *ClassSchema[T]) ForceFullNameCheck() bool { return s.index.hasCollision }

// ArraySchema is the compile-time description of a homogeneous JSON
// array's element type (C7), used by both the eager array parser and the
// lazy Iterator.
type ArraySchema[E any] struct {
	ParseElem     func(*Cursor) (E, error)
	SerializeElem func(w *Writer, v E) error

	// SizeHint, when > 0, pre-allocates capacity for eager fills — a
	// maxItems-style bound repurposed from a validation ceiling into a
	// reservation hint.
	SizeHint int
}

// NewArraySchema builds an array schema from element parse/serialize
// hooks. SizeHint defaults to 0 (no capacity reservation); set it via the
// returned schema's SizeHint field when the caller knows an upper bound.
func NewArraySchema[E any](parse func(*Cursor) (E, error), serialize func(w *Writer, v E) error) *ArraySchema[E] {
	return &ArraySchema[E]{ParseElem: parse, SerializeElem: serialize}
}

// Nullable is the trait a user-defined option-like type implements so
// the binder knows how to ask it whether it currently holds a value.
// jsonbind's built-in Optional[T] satisfies it. The parsers and
// serializers in this package do not consult Nullable themselves:
// BindStruct treats a pointer field, or a field with the "nullable" bind
// rule, as nullable, and a hand-written Member declares it through its
// Nullable and Omit fields.
type Nullable interface {
	HasValue() bool
}

// Optional is jsonbind's built-in option-like wrapper: a member typed
// Optional[T] may be entirely absent from the JSON document or present
// as `null`, without forcing the caller's struct to use a pointer field.
type Optional[T any] struct {
	value T
	valid bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, valid: true} }

// None constructs the empty state.
func None[T any]() Optional[T] { return Optional[T]{} }

// HasValue implements Nullable.
func (o Optional[T]) HasValue() bool { return o.valid }

// Get returns the wrapped value and whether it was present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.valid }
