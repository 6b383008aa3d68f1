package jsonbind

import (
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat_Basic(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"1", 1},
		{"-1", -1},
		{"3.14", 3.14},
		{"-3.14", -3.14},
		{"1e3", 1000},
		{"1.5e-2", 0.015},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := NewCursor([]byte(tt.in), DefaultPolicy())
			got, err := ParseFloat[float64](c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFloat_InvalidNumber(t *testing.T) {
	c := NewCursor([]byte(`--1`), DefaultPolicy())
	_, err := ParseFloat[float64](c)
	assert.Error(t, err)
}

// TestParseFloat_AgreesWithReferenceDecoder differentially checks
// jsonbind's zero-copy number scanner against goccy/go-json, an
// independently implemented decoder, across both Checked and unchecked
// policy words (spec.md §8's Checked=yes/no equivalence invariant).
func TestParseFloat_AgreesWithReferenceDecoder(t *testing.T) {
	inputs := []string{"0", "1", "-42", "3.14159", "6.022e23", "-1.5e-10"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			var want float64
			require.NoError(t, gojson.Unmarshal([]byte(in), &want))

			for _, policy := range []Policy{New(WithChecked(true)), New(WithChecked(false))} {
				c := NewCursor([]byte(in), policy)
				got, err := ParseFloat[float64](c)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}
