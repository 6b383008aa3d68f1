package jsonbind

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// ParsePathSelector splits a dotted/indexed selector such as "a.b[3]"
// into raw path segments ("a", "b", "3"). It translates the selector
// into a `/`-delimited JSON Pointer first and delegates the `~0`/`~1`
// unescaping pass to jsonpointer.Parse, so a member name that itself
// contains a literal "/" or "~" round-trips the same way a hand-written
// JSON Pointer would.
func ParsePathSelector(selector string) []string {
	if selector == "" {
		return nil
	}
	var ptr strings.Builder
	for _, r := range selector {
		switch r {
		case '.', '[':
			ptr.WriteByte('/')
		case ']':
			// closing index bracket carries no pointer segment of its own
		default:
			ptr.WriteRune(r)
		}
	}
	s := ptr.String()
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return jsonpointer.Parse(s)
}

// Navigate repositions c at the first byte of the value selected by
// segments (C8), descending through nested classes by member name and
// arrays by numeric index using the same structural-skip machinery the
// class and array parsers use. It never materializes values it passes
// over — a skipped sibling costs exactly what SkipValue costs.
func Navigate(c *Cursor, segments []string) error {
	for _, seg := range segments {
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
		b, err := c.Peek()
		if err != nil {
			return newError(UnexpectedEndOfData, c.pos)
		}
		switch b {
		case '{':
			if err := navigateIntoClass(c, seg); err != nil {
				return err
			}
		case '[':
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return newError(MissingMemberName, c.pos)
			}
			if err := navigateIntoArray(c, idx); err != nil {
				return err
			}
		default:
			return newError(ExpectedToken, c.pos)
		}
	}
	return c.SkipWhitespace()
}

// navigateIntoClass consumes c's `{...}`, leaving the cursor positioned
// at the start of the value bound to member name, or fails with
// MissingMemberName if no member matches.
func navigateIntoClass(c *Cursor, name string) error {
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
			return newError(MissingMemberName, c.pos)
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
		if string(key) == name {
			return nil // cursor now sits on the member's value
		}
		if _, err := SkipValue(c); err != nil {
			return err
		}
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
	}
}

// navigateIntoArray consumes c's `[...]`, leaving the cursor positioned
// at the start of the element at idx, or fails with MissingMemberName
// if the array has fewer elements.
func navigateIntoArray(c *Cursor, idx int) error {
	if idx < 0 {
		return newError(MissingMemberName, c.pos)
	}
	if err := c.Consume('['); err != nil {
		return err
	}
	if err := c.SkipWhitespace(); err != nil {
		return err
	}
	for i := 0; ; i++ {
		b, err := c.Peek()
		if err != nil {
			return newError(UnexpectedEndOfData, c.pos)
		}
		if b == ']' {
			return newError(MissingMemberName, c.pos)
		}
		if i == idx {
			return nil // cursor now sits on the target element
		}
		if _, err := SkipValue(c); err != nil {
			return err
		}
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
		if err := c.Consume(','); err != nil {
			return err
		}
		if err := c.SkipWhitespace(); err != nil {
			return err
		}
	}
}
