package cmdline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin []byte, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParseCmd_WholeDocument(t *testing.T) {
	out, _, err := run(t, []byte(`{"a":1}`), "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "class")
	assert.Contains(t, out, `{"a":1}`)
}

func TestParseCmd_WithPath(t *testing.T) {
	out, _, err := run(t, []byte(`{"a":{"b":[1,2,3]}}`), "parse", "--path", "a.b[1]")
	require.NoError(t, err)
	assert.Contains(t, out, "number")
	assert.Contains(t, out, "2")
}

func TestLocateCmd_ReportsPath(t *testing.T) {
	out, _, err := run(t, []byte(`{"a":[1,2,3]}`), "locate", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "path:")
	assert.Contains(t, out, "line:")
}

func TestWalkCmd_TracesScalars(t *testing.T) {
	out, _, err := run(t, []byte(`{"a":1}`), "walk")
	require.NoError(t, err)
	assert.Contains(t, out, "number .a = 1")
}
