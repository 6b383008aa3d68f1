package jsonbind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNow(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{name: "default RFC3339", args: nil},
		{name: "custom format", args: []any{"2006-01-02"}},
		{name: "time-only format", args: []any{"15:04:05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DefaultNow(tt.args...)
			require.NoError(t, err)
			s, ok := result.(string)
			require.True(t, ok)
			assert.NotEmpty(t, s)
		})
	}
}

func TestDefaultUUID(t *testing.T) {
	v, err := DefaultUUID()
	require.NoError(t, err)
	s, ok := v.(string)
	require.True(t, ok)
	assert.Len(t, s, 36)
}

func TestParseFunctionCall(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want *FunctionCall
	}{
		{name: "no args", expr: "uuid()", want: &FunctionCall{Name: "uuid"}},
		{name: "string arg", expr: "now(unix)", want: &FunctionCall{Name: "now", Args: []any{"unix"}}},
		{
			name: "multiple args",
			expr: "func(arg1, 42, 3.14)",
			want: &FunctionCall{Name: "func", Args: []any{"arg1", int64(42), float64(3.14)}},
		},
		{name: "not a call", expr: "just a string", want: nil},
		{name: "empty", expr: "", want: nil},
		{name: "unbalanced", expr: "func(", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFunctionCall(tt.expr)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.want.Args, got.Args)
		})
	}
}

func TestRegisterDefaultFunc(t *testing.T) {
	RegisterDefaultFunc("test_register", func(args ...any) (any, error) {
		return "test_result", nil
	})

	fn, ok := getDefaultFunc("test_register")
	require.True(t, ok)

	result, err := fn()
	require.NoError(t, err)
	assert.Equal(t, "test_result", result)
}

func TestResolveDefault(t *testing.T) {
	RegisterDefaultFunc("literal_id", func(args ...any) (any, error) {
		return "id_42", nil
	})

	v, err := ResolveDefault("literal_id()")
	require.NoError(t, err)
	assert.Equal(t, "id_42", v)

	// An unregistered call falls back to its literal text rather than
	// failing the parse outright.
	v, err = ResolveDefault("unregistered_func()")
	require.NoError(t, err)
	assert.Equal(t, "unregistered_func()", v)

	// A bare value with no call syntax is itself the literal default.
	v, err = ResolveDefault("active")
	require.NoError(t, err)
	assert.Equal(t, "active", v)
}

func TestResolveDefault_Now(t *testing.T) {
	v, err := ResolveDefault("now()")
	require.NoError(t, err)
	s, ok := v.(string)
	require.True(t, ok)
	_, err = time.Parse(time.RFC3339, s)
	assert.NoError(t, err)
}
