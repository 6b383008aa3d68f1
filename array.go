package jsonbind

// ParseArray reads a JSON array into a newly allocated []E using
// schema's element parser, reserving SizeHint capacity up front when
// the caller has set one (C7). Prefer Iterator when the caller only
// needs a single forward pass and wants to avoid the full-slice
// allocation.
func ParseArray[E any](c *Cursor, schema *ArraySchema[E]) ([]E, error) {
	if err := c.Consume('['); err != nil {
		return nil, err
	}
	if err := c.SkipWhitespace(); err != nil {
		return nil, err
	}

	var out []E
	if schema.SizeHint > 0 {
		out = make([]E, 0, schema.SizeHint)
	}

	b, err := c.Peek()
	if err != nil {
		return nil, newError(UnexpectedEndOfData, c.pos)
	}
	if b == ']' {
		c.pos++
		return out, nil
	}

	for {
		elem, err := schema.ParseElem(c)
		if err != nil {
			return nil, err
		}
		out = append(out, elem)

		if err := c.SkipWhitespace(); err != nil {
			return nil, err
		}
		b, err := c.Peek()
		if err != nil {
			return nil, newError(UnexpectedEndOfData, c.pos)
		}
		switch b {
		case ',':
			c.pos++
			if err := c.SkipWhitespace(); err != nil {
				return nil, err
			}
		case ']':
			c.pos++
			return out, nil
		default:
			return nil, newError(ExpectedToken, c.pos)
		}
	}
}
