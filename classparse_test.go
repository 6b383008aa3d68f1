package jsonbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X float64
	Y float64
}

func pointSchema() *ClassSchema[point] {
	return NewClassSchema(
		Member[point]{
			Name: "x",
			Parse: func(c *Cursor, v *point) error {
				f, err := ParseFloat[float64](c)
				if err != nil {
					return err
				}
				v.X = f
				return nil
			},
			Serialize: func(w *Writer, v *point) error { return WriteFloat(w, v.X) },
		},
		Member[point]{
			Name: "y",
			Parse: func(c *Cursor, v *point) error {
				f, err := ParseFloat[float64](c)
				if err != nil {
					return err
				}
				v.Y = f
				return nil
			},
			Serialize: func(w *Writer, v *point) error { return WriteFloat(w, v.Y) },
		},
	)
}

func TestParseClass_OutOfOrderMembers(t *testing.T) {
	c := NewCursor([]byte(`{"y":2,"x":1}`), DefaultPolicy())
	var p point
	require.NoError(t, ParseClass(c, pointSchema(), &p, false))
	assert.Equal(t, point{X: 1, Y: 2}, p)
}

func TestParseClass_UnknownMemberIgnoredByDefault(t *testing.T) {
	c := NewCursor([]byte(`{"x":1,"z":99,"y":2}`), DefaultPolicy())
	var p point
	require.NoError(t, ParseClass(c, pointSchema(), &p, false))
	assert.Equal(t, point{X: 1, Y: 2}, p)
}

func TestParseClass_UnknownMemberRejectedWhenStrict(t *testing.T) {
	c := NewCursor([]byte(`{"x":1,"z":99}`), DefaultPolicy())
	var p point
	err := ParseClass(c, pointSchema(), &p, true)
	require.Error(t, err)
	var jerr *Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, UnknownMember, jerr.Reason)
}

func TestParseClass_DuplicateKeyFirstWins(t *testing.T) {
	c := NewCursor([]byte(`{"x":1,"x":999,"y":2}`), DefaultPolicy())
	var p point
	require.NoError(t, ParseClass(c, pointSchema(), &p, false))
	assert.Equal(t, point{X: 1, Y: 2}, p)
}
