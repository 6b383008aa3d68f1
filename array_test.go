package jsonbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatArraySchema() *ArraySchema[float64] {
	return NewArraySchema(
		func(c *Cursor) (float64, error) { return ParseFloat[float64](c) },
		func(w *Writer, v float64) error { return WriteFloat(w, v) },
	)
}

func TestParseArray_Empty(t *testing.T) {
	c := NewCursor([]byte(`[]`), DefaultPolicy())
	out, err := ParseArray(c, floatArraySchema())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseArray_Elements(t *testing.T) {
	c := NewCursor([]byte(`[1,2,3.5]`), DefaultPolicy())
	out, err := ParseArray(c, floatArraySchema())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3.5}, out)
}

func TestParseArray_SizeHintReservesCapacity(t *testing.T) {
	schema := floatArraySchema()
	schema.SizeHint = 10
	c := NewCursor([]byte(`[1,2]`), DefaultPolicy())
	out, err := ParseArray(c, schema)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, out)
	assert.GreaterOrEqual(t, cap(out), 10)
}

func TestParseArray_TrailingCommaFails(t *testing.T) {
	c := NewCursor([]byte(`[1,2,]`), DefaultPolicy())
	_, err := ParseArray(c, floatArraySchema())
	assert.Error(t, err)
}

func TestIterator_SinglePass(t *testing.T) {
	c := NewCursor([]byte(`[1,2,3]`), DefaultPolicy())
	it, err := NewIterator(c, floatArraySchema())
	require.NoError(t, err)

	var got []float64
	for it.Next() {
		v, err := it.Value()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestIterator_Empty(t *testing.T) {
	c := NewCursor([]byte(`[]`), DefaultPolicy())
	it, err := NewIterator(c, floatArraySchema())
	require.NoError(t, err)
	assert.False(t, it.Next())
}
