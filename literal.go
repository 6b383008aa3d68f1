package jsonbind

// ParseBool matches exactly `true` or `false` at the cursor, advancing
// past it. Anything else fails with InvalidLiteral.
func ParseBool(c *Cursor) (bool, error) {
	start := c.pos
	if c.matchLiteral("true") {
		return true, nil
	}
	if c.matchLiteral("false") {
		return false, nil
	}
	return false, newError(InvalidLiteral, start)
}

// ParseNull matches exactly `null` at the cursor, advancing past it.
func ParseNull(c *Cursor) error {
	start := c.pos
	if c.matchLiteral("null") {
		return nil
	}
	return newError(InvalidLiteral, start)
}

// matchLiteral consumes lit if it appears at the cursor, reporting
// success; otherwise the cursor is left untouched.
func (c *Cursor) matchLiteral(lit string) bool {
	end := c.pos + len(lit)
	if end > len(c.data) {
		return false
	}
	if string(c.data[c.pos:end]) != lit {
		return false
	}
	c.pos = end
	return true
}
