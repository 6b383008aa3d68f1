package jsonbind

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type binderTestAccount struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

func TestBinder_ParseAndSerialize(t *testing.T) {
	b := NewBinder()
	doc := []byte(`{"id":"acc_1","name":"Ada","active":true}`)

	acct, err := Parse[binderTestAccount](b, doc, "")
	require.NoError(t, err)
	assert.Equal(t, binderTestAccount{ID: "acc_1", Name: "Ada", Active: true}, acct)

	var out bytes.Buffer
	require.NoError(t, Serialize(b, acct, &out))
	assert.Contains(t, out.String(), `"id":"acc_1"`)
}

func TestBinder_ParseWithPath(t *testing.T) {
	b := NewBinder()
	doc := []byte(`{"wrapper":{"id":"acc_2","name":"Bo","active":false}}`)

	acct, err := Parse[binderTestAccount](b, doc, "wrapper")
	require.NoError(t, err)
	assert.Equal(t, "acc_2", acct.ID)
}

func TestBinder_ParseArrayInto(t *testing.T) {
	b := NewBinder()
	doc := []byte(`[{"id":"a","name":"A","active":true},{"id":"b","name":"B","active":false}]`)

	it, err := ParseArrayInto[binderTestAccount](b, doc, "")
	require.NoError(t, err)

	var ids []string
	for it.Next() {
		acct, err := it.Value()
		require.NoError(t, err)
		ids = append(ids, acct.ID)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestBinder_StrictUnknownMembers(t *testing.T) {
	strict := NewBinder(WithStrictUnknownMembers(true))
	_, err := Parse[binderTestAccount](strict, []byte(`{"id":"a","name":"A","active":true,"extra":1}`), "")
	assert.Error(t, err)

	lenient := NewBinder()
	_, err = Parse[binderTestAccount](lenient, []byte(`{"id":"a","name":"A","active":true,"extra":1}`), "")
	assert.NoError(t, err)
}

func TestBinder_CustomDefaultFunc(t *testing.T) {
	type withDefault struct {
		Status string `json:"status" bind:"omitempty,default=custom_default()"`
	}

	b := NewBinder(WithDefaultFunc("custom_default", func(_ ...any) (any, error) {
		return "fallback", nil
	}))

	v, err := Parse[withDefault](b, []byte(`{}`), "")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v.Status)
}

func TestBinder_BindingCacheIsolatedPerBinder(t *testing.T) {
	strict := NewBinder(WithStrictUnknownMembers(true))
	lenient := NewBinder()

	_, errStrict := Parse[binderTestAccount](strict, []byte(`{"id":"a","name":"A","active":true,"extra":1}`), "")
	_, errLenient := Parse[binderTestAccount](lenient, []byte(`{"id":"a","name":"A","active":true,"extra":1}`), "")

	assert.Error(t, errStrict)
	assert.NoError(t, errLenient)
}
