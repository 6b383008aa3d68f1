package jsonbind

// ParseClass reads one JSON object into *v according to schema (C6): a
// state machine over EXPECT_LBRACE -> EXPECT_KEY_OR_RBRACE ->
// EXPECT_COLON -> EXPECT_VALUE -> EXPECT_COMMA_OR_RBRACE -> DONE.
//
// Members are looked up by the schema's FNV-1a name index in whatever
// order the document presents them — not necessarily schema order — so
// an out-of-order document costs nothing extra on the common path. A
// repeated key follows first-match-wins: the first occurrence binds,
// later ones are parsed (to stay well-formed) and discarded. An unknown
// key is skipped unless strictUnknownMembers requests UnknownMember.
func ParseClass[T any](c *Cursor, schema *ClassSchema[T], v *T, strictUnknownMembers bool) error {
	if err := c.Consume('{'); err != nil {
		return err
	}
	if err := c.SkipWhitespace(); err != nil {
		return err
	}

	forceFullNameCheck := schema.ForceFullNameCheck()
	seen := make([]bool, len(schema.Members))
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

		if !c.AtStringStart() {
			return newError(ExpectedToken, c.pos)
		}
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

		mi := schema.index.find(key, forceFullNameCheck)
		switch {
		case mi < 0:
			if strictUnknownMembers {
				return newError(UnknownMember, c.pos)
			}
			if _, err := SkipValue(c); err != nil {
				return err
			}
		case seen[mi]:
			// Duplicate key: parse to stay well-formed, first value wins.
			if _, err := SkipValue(c); err != nil {
				return err
			}
		default:
			if err := schema.Members[mi].Parse(c, v); err != nil {
				return err
			}
			seen[mi] = true
		}

		if err := c.SkipWhitespace(); err != nil {
			return err
		}
	}

	return applyMemberDefaults(c, schema, v, seen)
}

// applyMemberDefaults resolves a Default expression for every member
// not present in the document, in schema (not document) order. A member
// that is absent, has no Default, and is not Nullable fails the whole
// parse with MissingMemberName rather than silently leaving its zero
// value in place.
func applyMemberDefaults[T any](c *Cursor, schema *ClassSchema[T], v *T, seen []bool) error {
	for i, m := range schema.Members {
		if seen[i] {
			continue
		}
		if m.Default == "" || m.ApplyDefault == nil {
			if !m.Nullable {
				return newError(MissingMemberName, c.pos)
			}
			continue
		}
		val, err := ResolveDefault(m.Default)
		if err != nil {
			return err
		}
		if err := m.ApplyDefault(v, val); err != nil {
			return newError(Unknown, c.pos)
		}
	}
	return nil
}

// find returns the index of the member whose name matches key, or -1.
// It is the class parser's only linear scan: schemas are expected to
// have a handful of members, so this beats building a real hash map
// for the common case while using the same hash+length fast path as
// nameIndex.matches, which the reflective struct parser calls.
func (idx *nameIndex) find(key []byte, forceFullNameCheck bool) int {
	if forceFullNameCheck || idx.hasCollision {
		for i := range idx.names {
			if string(key) == idx.names[i] {
				return i
			}
		}
		return -1
	}
	h := fnv1a64(key)
	for i := range idx.names {
		if len(key) == len(idx.names[i]) && h == idx.hashes[i] {
			return i
		}
	}
	return -1
}
