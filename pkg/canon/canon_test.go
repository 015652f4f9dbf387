package canon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSortsKeys(t *testing.T) {
	t.Parallel()

	type record struct {
		Zulu  int    `json:"zulu"`
		Alpha string `json:"alpha"`
		Mike  bool   `json:"mike"`
	}

	out, err := Marshal(record{Zulu: 1, Alpha: "x", Mike: true})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"x","mike":true,"zulu":1}`, string(out))
}

func TestMarshalCompact(t *testing.T) {
	t.Parallel()

	out, err := Marshal(map[string]any{"b": []int{1, 2}, "a": "v"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), " ")
	assert.NotContains(t, string(out), "\n")
}

func TestCanonicalAndPrettyDiffer(t *testing.T) {
	t.Parallel()

	v := map[string]any{"n_days": 252, "entry_z": 1.0}

	c, err := Marshal(v)
	require.NoError(t, err)
	p, err := Pretty(v)
	require.NoError(t, err)

	assert.NotEqual(t, string(c), string(p))
	assert.Equal(t, byte('\n'), p[len(p)-1])
	// Same hash input gives the same digest, regardless of pretty form.
	assert.Equal(t, SHA256Hex(c), SHA256Hex(c))
	assert.NotEqual(t, SHA256Hex(c), SHA256Hex(p))
}

func TestSHA256Hex(t *testing.T) {
	t.Parallel()

	// Well-known digest of the empty input.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		SHA256Hex(nil))
}

func TestFileSHA256(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blob.json")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	got, err := FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, SHA256Hex([]byte("{}\n")), got)

	_, err = FileSHA256(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
