package jsonbind

import "strconv"

// PathNode is one frame of the stack Locate builds: the value's name
// (inside a class), index (inside an array, else -1), its kind, and the
// byte offset its data starts at. This mirrors the original
// implementation's json_path_node, which this package's Locate/
// FormatPath pair is ported from.
type PathNode struct {
	Name  string
	Index int
	Kind  ValueKind
	Start int
}

// Locate walks data from the start and returns the stack of PathNodes
// describing the value containing byte offset, root first. It is
// tolerant of a document that fails to fully parse: if a structural
// error is hit partway through, Locate still returns the best-effort
// stack built for whatever was scanned before the failure, rather than
// nothing — an error offset from a failed Parse call is frequently
// itself inside the malformed region, and the caller wants path context
// for it, not another error.
func Locate(data []byte, offset int) []PathNode {
	c := NewCursor(data, DefaultPolicy())
	stack, _ := locateValue(c, offset, "", -1)
	return stack
}

func locateValue(c *Cursor, offset int, name string, index int) ([]PathNode, bool) {
	if err := c.SkipWhitespace(); err != nil {
		return nil, false
	}
	start := c.pos
	b, err := c.Peek()
	if err != nil {
		return nil, false
	}

	switch b {
	case '{':
		return locateContainer(c, offset, name, index, start, KindClass, '}', locateClassChild)
	case '[':
		return locateContainer(c, offset, name, index, start, KindArray, ']', locateArrayChild)
	default:
		kind, err := SkipValue(c)
		if err != nil {
			// Partial scalar: report it if offset falls in what was
			// consumed before failure.
			if offset >= start && offset < c.pos {
				return []PathNode{{Name: name, Index: index, Kind: KindUnknown, Start: start}}, true
			}
			return nil, false
		}
		self := []PathNode{{Name: name, Index: index, Kind: kind, Start: start}}
		if offset >= start && offset < c.pos {
			return self, true
		}
		// Not a match, but still the nearest scanned sibling — kept so a
		// container that later fails can fall back to it instead of
		// reporting only itself.
		return self, false
	}
}

// childLocator scans one member/element of an already-opened
// container, returning a found child stack, or (nil, false, err) where
// err is non-nil only on a structural failure that should stop the
// container scan entirely.
type childLocator func(c *Cursor, offset int, elemIndex int) ([]PathNode, bool, error)

func locateContainer(
	c *Cursor, offset int, name string, index int, start int,
	kind ValueKind, closeByte byte, next childLocator,
) ([]PathNode, bool) {
	self := PathNode{Name: name, Index: index, Kind: kind, Start: start}
	c.pos++ // opening brace/bracket
	if err := c.SkipWhitespace(); err != nil {
		return containedSelf(c, offset, start, self, nil)
	}

	var lastChild []PathNode
	first := true
	elemIndex := 0
	for {
		b, err := c.Peek()
		if err != nil {
			return containedSelf(c, offset, start, self, lastChild)
		}
		if b == closeByte {
			c.pos++
			return containedSelf(c, offset, start, self, lastChild)
		}
		if !first {
			if err := c.Consume(','); err != nil {
				return containedSelf(c, offset, start, self, lastChild)
			}
			if err := c.SkipWhitespace(); err != nil {
				return containedSelf(c, offset, start, self, lastChild)
			}
		}
		first = false

		stack, found, err := next(c, offset, elemIndex)
		if err != nil {
			return containedSelf(c, offset, start, self, lastChild)
		}
		if found {
			return append([]PathNode{self}, stack...), true
		}
		if stack != nil {
			lastChild = stack
		}
		if err := c.SkipWhitespace(); err != nil {
			return containedSelf(c, offset, start, self, lastChild)
		}
		elemIndex++
	}
}

func locateClassChild(c *Cursor, offset int, _ int) ([]PathNode, bool, error) {
	key, err := ParseStringRaw(c, true)
	if err != nil {
		return nil, false, err
	}
	if err := c.SkipWhitespace(); err != nil {
		return nil, false, err
	}
	if err := c.Consume(':'); err != nil {
		return nil, false, err
	}
	if err := c.SkipWhitespace(); err != nil {
		return nil, false, err
	}
	stack, found := locateValue(c, offset, string(key), -1)
	return stack, found, nil
}

func locateArrayChild(c *Cursor, offset int, elemIndex int) ([]PathNode, bool, error) {
	stack, found := locateValue(c, offset, "", elemIndex)
	return stack, found, nil
}

// containedSelf reports the container itself as the answer when offset
// falls within what was scanned of it (its opening brace, trailing
// whitespace, or a region orphaned by a structural error), and bubbles
// failure otherwise. When the container had already scanned at least one
// child before the failure, lastChild's frame is appended rather than
// discarded, so an offset past the last well-formed member still
// resolves to that member instead of only its enclosing container.
func containedSelf(c *Cursor, offset, start int, self PathNode, lastChild []PathNode) ([]PathNode, bool) {
	if offset >= start && offset <= c.pos {
		if lastChild != nil {
			return append([]PathNode{self}, lastChild...), true
		}
		return []PathNode{self}, true
	}
	return nil, false
}

// FormatPath renders a PathNode stack the way the original
// implementation's to_json_path_string does: an array element
// contributes "[index]", a class member contributes ".name", and the
// root frame (empty name, negative index) contributes nothing.
func FormatPath(stack []PathNode) string {
	var out []byte
	for _, n := range stack {
		switch {
		case n.Index >= 0:
			out = append(out, '[')
			out = strconv.AppendInt(out, int64(n.Index), 10)
			out = append(out, ']')
		case n.Name != "":
			out = append(out, '.')
			out = append(out, n.Name...)
		}
	}
	return string(out)
}

// LineCol converts a byte offset into a 1-based line and column,
// counting newlines in data up to offset — the Go analogue of the
// original implementation's find_line_number_of/find_column_number_of
// pair.
func LineCol(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	line = 1
	lastNL := -1
	for i := 0; i < offset; i++ {
		if data[i] == '\n' {
			line++
			lastNL = i
		}
	}
	return line, offset - lastNL
}
