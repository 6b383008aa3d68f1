package jsonbind

import "errors"

// Handler receives SAX-style callbacks from Walk (C9). Each method
// reports whether the walk should continue; returning false from any
// callback aborts the remainder of the walk (Walk then returns nil, not
// an error — stopping early is a choice the handler made, not a parse
// failure). name and index describe the value's position in its
// parent: name is set inside a class, index (>= 0) inside an array.
// Index is -1 for a class member and at the document root, where name
// is also empty.
type Handler interface {
	OnClassStart(name string, index int) bool
	OnClassEnd() bool
	OnArrayStart(name string, index int) bool
	OnArrayEnd() bool
	OnScalar(name string, index int, kind ValueKind, raw []byte) bool
}

var errWalkStopped = errors.New("jsonbind: walk stopped by handler")

// Walk performs a single depth-first traversal of data under policy p,
// invoking h's callbacks as each value is reached. It never
// materializes a value beyond what SkipValue already scans for a
// scalar, so a walk over an uninteresting document costs the same as
// SkipValue would.
func Walk(data []byte, h Handler, p Policy) error {
	c := NewCursor(data, p)
	err := walkValue(c, h, "", -1)
	if errors.Is(err, errWalkStopped) {
		return nil
	}
	return err
}

func walkValue(c *Cursor, h Handler, name string, index int) error {
	if err := c.SkipWhitespace(); err != nil {
		return err
	}
	b, err := c.Peek()
	if err != nil {
		return newError(UnexpectedEndOfData, c.pos)
	}

	switch b {
	case '{':
		if !h.OnClassStart(name, index) {
			return errWalkStopped
		}
		if err := walkClassBody(c, h); err != nil {
			return err
		}
		if !h.OnClassEnd() {
			return errWalkStopped
		}
		return nil
	case '[':
		if !h.OnArrayStart(name, index) {
			return errWalkStopped
		}
		if err := walkArrayBody(c, h); err != nil {
			return err
		}
		if !h.OnArrayEnd() {
			return errWalkStopped
		}
		return nil
	default:
		start := c.pos
		kind, err := SkipValue(c)
		if err != nil {
			return err
		}
		if !h.OnScalar(name, index, kind, c.data[start:c.pos]) {
			return errWalkStopped
		}
		return nil
	}
}

func walkClassBody(c *Cursor, h Handler) error {
	if err := c.Consume('{'); err != nil {
		return err
	}
	if err := c.SkipWhitespace(); err != nil {
		return err
	}
	first := true
	for {
		b, err := c.Peek()
		if err != nil {
			return newError(UnexpectedEndOfData, c.pos)
		}
		if b == '}' {
			c.pos++
			return nil
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
		if err := walkValue(c, h, string(key), -1); err != nil {
			return err
		}
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
	}
}

func walkArrayBody(c *Cursor, h Handler) error {
	if err := c.Consume('['); err != nil {
		return err
	}
	if err := c.SkipWhitespace(); err != nil {
		return err
	}
	first := true
	i := 0
	for {
		b, err := c.Peek()
		if err != nil {
			return newError(UnexpectedEndOfData, c.pos)
		}
		if b == ']' {
			c.pos++
			return nil
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

		if err := walkValue(c, h, "", i); err != nil {
			return err
		}
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
		i++
	}
}
