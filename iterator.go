package jsonbind

// Iterator walks a JSON array's elements one at a time without
// materializing the whole slice (C7's lazy counterpart to ParseArray).
// It is single-pass and not restartable: once the cursor has moved
// past an element there is no way back to it, matching the zero-copy
// parser's refusal to buffer anything it doesn't have to.
type Iterator[E any] struct {
	c      *Cursor
	schema *ArraySchema[E]
	state  iterState
	err    error
}

type iterState int

const (
	iterBeforeOpen iterState = iota
	iterAtElement
	iterDone
)

// NewIterator positions an Iterator at the start of the array the
// cursor currently sits on, consuming the opening `[` (and the closing
// `]` immediately, if the array is empty).
func NewIterator[E any](c *Cursor, schema *ArraySchema[E]) (*Iterator[E], error) {
	if err := c.Consume('['); err != nil {
		return nil, err
	}
	if err := c.SkipWhitespace(); err != nil {
		return nil, err
	}
	it := &Iterator[E]{c: c, schema: schema, state: iterBeforeOpen}
	b, err := c.Peek()
	if err != nil {
		return nil, newError(UnexpectedEndOfData, c.pos)
	}
	if b == ']' {
		c.pos++
		it.state = iterDone
		return it, nil
	}
	it.state = iterAtElement
	return it, nil
}

// Next reports whether another element is available. Callers must call
// Next before each Value (including the first). Next does not move the
// cursor: Value has already advanced past the previous element's
// trailing comma or closing bracket.
func (it *Iterator[E]) Next() bool {
	if it.state == iterDone || it.err != nil {
		return false
	}
	return it.state == iterAtElement
}

// Value parses and returns the current element, then advances the
// cursor past its trailing separator so the following Next/Value call
// sees the next element (or end of array).
func (it *Iterator[E]) Value() (E, error) {
	var zero E
	if it.state != iterAtElement {
		return zero, newError(Unknown, it.c.pos)
	}

	elem, err := it.schema.ParseElem(it.c)
	if err != nil {
		it.err = err
		it.state = iterDone
		return zero, err
	}

	if err := it.c.SkipWhitespace(); err != nil {
		it.err = err
		it.state = iterDone
		return zero, err
	}
	b, err := it.c.Peek()
	if err != nil {
		it.err = newError(UnexpectedEndOfData, it.c.pos)
		it.state = iterDone
		return zero, it.err
	}
	switch b {
	case ',':
		it.c.pos++
		if err := it.c.SkipWhitespace(); err != nil {
			it.err = err
			it.state = iterDone
			return zero, err
		}
		it.state = iterAtElement
	case ']':
		it.c.pos++
		it.state = iterDone
	default:
		it.err = newError(ExpectedToken, it.c.pos)
		it.state = iterDone
		return zero, it.err
	}

	return elem, nil
}

// Err returns the first error encountered by the iterator, if any.
func (it *Iterator[E]) Err() error { return it.err }
