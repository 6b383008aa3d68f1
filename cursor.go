package jsonbind

// Cursor is a synchronous, policy-aware cursor over an input byte range
// [0, len(data)). It is the C2 "parse state": every primitive parser, the
// class parser, and the array parser advance a *Cursor rather than
// re-deriving position from scratch. A Cursor is stack-local and lives
// for exactly one Parse/Walk/Locate call; it holds no shared mutable
// state and is never reused across calls.
type Cursor struct {
	data   []byte
	pos    int
	policy Policy
}

// NewCursor positions a cursor at the start of data under the given
// policy. If policy.ZeroTerminated() is set, the caller promises data is
// followed by a sentinel 0 byte (or data itself contains one at len(data)
// if the caller over-allocated); the cursor does not verify this.
func NewCursor(data []byte, policy Policy) *Cursor {
	return &Cursor{data: data, pos: 0, policy: policy}
}

// Pos returns the current byte offset, for attaching to errors.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total input length.
func (c *Cursor) Len() int { return len(c.data) }

// Done reports whether the cursor has consumed the entire input.
func (c *Cursor) Done() bool { return c.pos >= len(c.data) }

// Remaining returns the unconsumed tail of the input.
func (c *Cursor) Remaining() []byte { return c.data[c.pos:] }

// fail builds an *Error anchored at the cursor's current position.
func (c *Cursor) fail(r Reason) *Error { return newError(r, c.pos) }

// Peek returns the byte at the cursor without advancing, failing with
// UnexpectedEndOfData if the input is exhausted.
func (c *Cursor) Peek() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, c.fail(UnexpectedEndOfData)
	}
	return c.data[c.pos], nil
}

// Advance moves the cursor forward by one byte, assumed already peeked.
func (c *Cursor) Advance() { c.pos++ }

// Consume requires the current byte to equal ch, advancing past it on
// success and failing with ExpectedToken otherwise.
func (c *Cursor) Consume(ch byte) error {
	b, err := c.Peek()
	if err != nil {
		return err
	}
	if b != ch {
		return c.fail(ExpectedToken)
	}
	c.pos++
	return nil
}

// TryConsume advances past ch and reports true if the current byte is
// ch; otherwise it leaves the cursor untouched and reports false. Unlike
// Consume it never fails on end-of-data, for a structural byte that may
// or may not be present.
func (c *Cursor) TryConsume(ch byte) bool {
	if c.pos < len(c.data) && c.data[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// SkipWhitespace advances past runs of spaces, tabs, CR, LF, and — when
// the policy's Comments mode allows it — `// line`, `/* block */`, or
// `# line` comments. It is never invoked while the cursor sits inside a
// string body (string scanners own that range end-to-end), which is how
// jsonbind avoids treating a `//` inside a quoted value as a comment.
func (c *Cursor) SkipWhitespace() error {
	for c.pos < len(c.data) {
		b := c.data[c.pos]
		if isWhitespace(b) {
			c.pos++
			continue
		}
		if b == '/' && c.policy.CommentMode() == CommentsCPP {
			if ok, err := c.skipCPPComment(); err != nil {
				return err
			} else if ok {
				continue
			}
		}
		if b == '#' && c.policy.CommentMode() == CommentsHash {
			c.skipLineComment(1)
			continue
		}
		break
	}
	return nil
}

// skipCPPComment consumes a `//...` or `/*...*/` comment starting at the
// cursor, returning ok=false (without advancing) if the next bytes are a
// bare `/` that doesn't start a recognized comment form.
func (c *Cursor) skipCPPComment() (bool, error) {
	if c.pos+1 >= len(c.data) {
		return false, nil
	}
	switch c.data[c.pos+1] {
	case '/':
		c.skipLineComment(2)
		return true, nil
	case '*':
		c.pos += 2
		for {
			if c.pos+1 >= len(c.data) {
				if c.policy.Checked() {
					return false, c.fail(UnexpectedEndOfData)
				}
				c.pos = len(c.data)
				return true, nil
			}
			if c.data[c.pos] == '*' && c.data[c.pos+1] == '/' {
				c.pos += 2
				return true, nil
			}
			c.pos++
		}
	default:
		return false, nil
	}
}

// skipLineComment advances skip bytes past the introducer, then to just
// after the next newline (or end of input).
func (c *Cursor) skipLineComment(skip int) {
	c.pos += skip
	for c.pos < len(c.data) && c.data[c.pos] != '\n' {
		c.pos++
	}
	if c.pos < len(c.data) {
		c.pos++ // consume the newline itself
	}
}

// AtClassStart reports whether the cursor currently sits on `{`.
func (c *Cursor) AtClassStart() bool {
	b, err := c.Peek()
	return err == nil && b == '{'
}

// AtArrayStart reports whether the cursor currently sits on `[`.
func (c *Cursor) AtArrayStart() bool {
	b, err := c.Peek()
	return err == nil && b == '['
}

// AtStringStart reports whether the cursor currently sits on `"`.
func (c *Cursor) AtStringStart() bool {
	b, err := c.Peek()
	return err == nil && b == '"'
}

// AtNull reports whether the cursor sits on the literal `null`, without
// consuming it.
func (c *Cursor) AtNull() bool {
	return c.pos+4 <= len(c.data) && string(c.data[c.pos:c.pos+4]) == "null"
}
