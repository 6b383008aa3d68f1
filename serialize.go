package jsonbind

// SerializeClass writes v as a JSON object, emitting each schema member
// in declared order (never document order — there is no document to
// follow) as `"name":value`, separated by commas. A nullable member with
// no value is omitted unless its AlwaysInclude flag is set, in which
// case `null` is emitted. Round-tripping re-serialized output therefore
// produces a canonical key ordering, not necessarily byte-identical
// input (spec.md §5).
func SerializeClass[T any](w *Writer, schema *ClassSchema[T], v *T) error {
	if err := w.byte('{'); err != nil {
		return err
	}
	wrote := false
	for _, m := range schema.Members {
		if m.Omit != nil && m.Omit(v) {
			continue
		}
		if wrote {
			if err := w.byte(','); err != nil {
				return err
			}
		}
		if err := w.WriteName(m.Name); err != nil {
			return err
		}
		if err := m.Serialize(w, v); err != nil {
			return err
		}
		wrote = true
	}
	return w.byte('}')
}

// SerializeArray writes a slice as a JSON array, emitting each element in
// slice order via the array schema's SerializeElem hook.
func SerializeArray[E any](w *Writer, schema *ArraySchema[E], v []E) error {
	if err := w.byte('['); err != nil {
		return err
	}
	for i, e := range v {
		if i > 0 {
			if err := w.byte(','); err != nil {
				return err
			}
		}
		if err := schema.SerializeElem(w, e); err != nil {
			return err
		}
	}
	return w.byte(']')
}

// SerializeOptional is a Member.Serialize helper for a nullable member's
// value half: an empty Optional writes `null` (reached only when the
// member's AlwaysInclude is set — a non-AlwaysInclude empty Optional is
// kept out of SerializeClass's loop entirely by the member's Omit
// closure, so this function never needs to know about omission itself).
// A present value is written via inner.
func SerializeOptional[T any](w *Writer, o Optional[T], inner func(*Writer, T) error) error {
	v, ok := o.Get()
	if !ok {
		return WriteNull(w)
	}
	return inner(w, v)
}
