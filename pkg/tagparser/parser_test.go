package tagparser

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagParser_ParseTagString(t *testing.T) {
	parser := New()

	tests := []struct {
		name     string
		tag      string
		expected []TagRule
	}{
		{
			name:     "bare rule",
			tag:      "omitempty",
			expected: []TagRule{{Name: "omitempty"}},
		},
		{
			name:     "rule with parameter",
			tag:      "default=uuid()",
			expected: []TagRule{{Name: "default", Params: []string{"uuid()"}}},
		},
		{
			name: "multiple rules",
			tag:  "nullable,omitempty,default=now()",
			expected: []TagRule{
				{Name: "nullable"},
				{Name: "omitempty"},
				{Name: "default", Params: []string{"now()"}},
			},
		},
		{
			name:     "quoted parameter preserves internal comma",
			tag:      `converter="a,b"`,
			expected: []TagRule{{Name: "converter", Params: []string{"a,b"}}},
		},
		{
			name:     "empty tag",
			tag:      "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := parser.ParseTagString(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rules)
		})
	}
}

type taggedExample struct {
	ID       string  `json:"id" bind:"default=uuid()"`
	Name     string  `json:"name"`
	Nickname *string `json:"nickname,omitempty" bind:"omitempty"`
	Ignored  string  `bind:"-"`
	hidden   string  //nolint:unused
}

func TestTagParser_ParseStructTags(t *testing.T) {
	parser := New()

	fields, err := parser.ParseStructTags(reflect.TypeOf(taggedExample{}))
	require.NoError(t, err)
	require.Len(t, fields, 3)

	assert.Equal(t, "id", fields[0].JSONName)
	assert.Equal(t, "uuid()", fields[0].Default)

	assert.Equal(t, "name", fields[1].JSONName)
	assert.False(t, fields[1].Nullable)

	assert.Equal(t, "nickname", fields[2].JSONName)
	assert.True(t, fields[2].Nullable) // pointer field
	assert.True(t, fields[2].OmitEmpty)
}

func TestTagParser_CustomTagName(t *testing.T) {
	parser := NewWithTagName("jsonbind")
	type custom struct {
		Field string `jsonbind:"default=literal('x')"`
	}
	fields, err := parser.ParseStructTags(reflect.TypeOf(custom{}))
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "literal('x')", fields[0].Default)
}

func TestIsValidRule(t *testing.T) {
	assert.True(t, IsValidRule("omitempty"))
	assert.True(t, IsValidRule("default"))
	assert.False(t, IsValidRule("minLength"))
}
