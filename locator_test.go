package jsonbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_NestedClassMember(t *testing.T) {
	doc := []byte(`{"a":{"b":[1,2,3]}}`)
	offset := 13 // the "2" inside a.b

	stack := Locate(doc, offset)
	require.NotEmpty(t, stack)
	assert.Equal(t, ".a.b[1]", FormatPath(stack))
}

func TestLocate_TopLevelScalar(t *testing.T) {
	doc := []byte(`42`)
	stack := Locate(doc, 0)
	assert.Equal(t, "", FormatPath(stack))
}

func TestLocate_MalformedDocumentFallsBackToContainer(t *testing.T) {
	// Missing closing brace: Locate must still report a best-effort
	// path for an offset that lies inside the class it did manage to
	// scan, rather than failing outright.
	doc := []byte(`{"a":1,"b":2`)
	stack := Locate(doc, 7)
	assert.NotPanics(t, func() { FormatPath(stack) })
}

func TestLocate_TrailingCommaRetainsLastMember(t *testing.T) {
	// Truncated right after "a":1's trailing comma: the document never
	// reaches another member, but the offset still falls within the
	// class, so Locate must report the last member it did manage to
	// scan ("a") instead of collapsing to just the enclosing class.
	doc := []byte(`{"a":1,`)
	stack := Locate(doc, 7)
	require.Len(t, stack, 2)
	assert.Equal(t, "a", stack[1].Name)
	assert.Equal(t, ".a", FormatPath(stack))
}

func TestFormatPath_Empty(t *testing.T) {
	assert.Equal(t, "", FormatPath(nil))
}

func TestLineCol_FirstLine(t *testing.T) {
	line, col := LineCol([]byte(`{"a":1}`), 5)
	assert.Equal(t, 1, line)
	assert.Equal(t, 6, col)
}

func TestLineCol_SecondLine(t *testing.T) {
	doc := []byte("{\n  \"a\":1\n}")
	line, col := LineCol(doc, 6)
	assert.Equal(t, 2, line)
}
