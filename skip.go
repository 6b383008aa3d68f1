package jsonbind

// ValueKind classifies the JSON value a cursor currently sits on, as
// reported by SkipValue and the event walker.
type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindClass
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// SkipValue advances the cursor past whatever value it currently sits
// on, without materializing it (C4). On success the cursor rests on the
// byte after the value; whitespace following the value is NOT consumed.
// It reports which kind of value was skipped; the event walker, the path
// locator and jsonbindcat's parse command use that kind, while the class
// parsers discard it when skipping unknown or duplicate members.
func SkipValue(c *Cursor) (ValueKind, error) {
	b, err := c.Peek()
	if err != nil {
		return KindUnknown, err
	}
	switch {
	case b == '{':
		return KindClass, c.skipClass()
	case b == '[':
		return KindArray, c.skipArray()
	case b == '"':
		_, err := ParseStringRaw(c, true)
		return KindString, err
	case b == 't' || b == 'f':
		return KindBool, skipBool(c)
	case b == 'n':
		return KindNull, ParseNull(c)
	case b == '-' || isDigit(b):
		_, err := scanNumberToken(c)
		return KindNumber, err
	default:
		return KindUnknown, newError(ExpectedToken, c.pos)
	}
}

// skipBool is a tiny adapter so SkipValue can discard a bool's value
// without an extra allocation or named return.
func skipBool(c *Cursor) error {
	_, err := ParseBool(c)
	return err
}

// skipClass skips a `{...}` span using skipBracketed.
func (c *Cursor) skipClass() error { return c.skipBracketed() }

// skipArray skips a `[...]` span using skipBracketed.
func (c *Cursor) skipArray() error { return c.skipBracketed() }

// skipBracketed skips a `{...}` or `[...]` span opened by the byte the
// cursor currently sits on. It tracks a single depth counter across both
// bracket kinds, since either may nest inside the other ({"a":[{"b":1}]}),
// and treats string bodies opaquely so a brace or bracket inside a quoted
// value never affects depth. Comment handling follows policy via
// SkipWhitespace.
func (c *Cursor) skipBracketed() error {
	start := c.pos
	c.pos++ // opening '{' or '['
	depth := 1
	for depth > 0 {
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
		b, err := c.Peek()
		if err != nil {
			return newError(UnexpectedEndOfData, start)
		}
		switch b {
		case '"':
			if _, err := ParseStringRaw(c, true); err != nil {
				return err
			}
		case '{', '[':
			depth++
			c.pos++
		case '}', ']':
			depth--
			c.pos++
		default:
			c.pos++
		}
	}
	return nil
}
