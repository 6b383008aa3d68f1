package jsonbind

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverterFor_Base64(t *testing.T) {
	conv, ok := converterFor("base64")
	require.True(t, ok)

	decoded, err := conv.Decode("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)

	encoded, err := conv.Encode([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", encoded)

	_, err = conv.Encode("not bytes")
	assert.Error(t, err)
}

func TestConverterFor_URL(t *testing.T) {
	conv, ok := converterFor("url")
	require.True(t, ok)

	decoded, err := conv.Decode("https://example.com/path")
	require.NoError(t, err)
	u, ok := decoded.(*url.URL)
	require.True(t, ok)
	assert.Equal(t, "example.com", u.Host)

	encoded, err := conv.Encode(u)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", encoded)

	_, err = conv.Encode(42)
	assert.Error(t, err)
}

func TestConverterFor_UUID(t *testing.T) {
	conv, ok := converterFor("uuid")
	require.True(t, ok)

	id := uuid.New()
	decoded, err := conv.Decode(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, decoded)

	encoded, err := conv.Encode(id)
	require.NoError(t, err)
	assert.Equal(t, id.String(), encoded)
}

func TestConverterFor_Unknown(t *testing.T) {
	_, ok := converterFor("does-not-exist")
	assert.False(t, ok)
}
