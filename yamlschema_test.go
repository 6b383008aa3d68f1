package jsonbind

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAMLSchema = `
members:
  - name: name
    kind: string
  - name: age
    kind: number
  - name: tags
    kind: array
    nullable: true
`

func TestBindYAML_ParseAndSerialize(t *testing.T) {
	schema, err := BindYAML([]byte(testYAMLSchema))
	require.NoError(t, err)

	c := NewCursor([]byte(`{"name":"Alice","age":25,"tags":["a","b"]}`), DefaultPolicy())
	result := map[string]any{}
	require.NoError(t, ParseClass(c, schema, &result, false))

	assert.Equal(t, "Alice", result["name"])
	assert.Equal(t, 25.0, result["age"])

	var out bytes.Buffer
	w := NewWriter(&out, DefaultPolicy())
	require.NoError(t, SerializeClass(w, schema, &result))
	assert.Contains(t, out.String(), `"name":"Alice"`)
}

func TestBindYAML_NullableMemberOmittedWhenAbsent(t *testing.T) {
	schema, err := BindYAML([]byte(testYAMLSchema))
	require.NoError(t, err)

	c := NewCursor([]byte(`{"name":"Bob","age":30}`), DefaultPolicy())
	result := map[string]any{}
	require.NoError(t, ParseClass(c, schema, &result, false))

	_, hasTags := result["tags"]
	assert.False(t, hasTags)
}

func TestBindYAML_UnrecognizedKind(t *testing.T) {
	_, err := BindYAML([]byte(`
members:
  - name: x
    kind: not-a-real-kind
`))
	assert.Error(t, err)
}
