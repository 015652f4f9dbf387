package artifact

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/prereg/pkg/canon"
)

func TestWriteArtifactPrettyWithTrailingNewline(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	sha, err := w.WriteArtifact(PreregFile, map[string]any{"seed": 123})
	require.NoError(t, err)

	b, err := os.ReadFile(w.Path(PreregFile))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"seed\": 123\n}\n", string(b))
	assert.Equal(t, canon.SHA256Hex(b), sha, "returned hash covers the bytes on disk")
}

func TestAppendLedgerGrowsOnly(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.AppendLedger(EventPreregWritten, PreregFile, "abc", map[string]any{"AEQ": "x"}))
	first, err := os.ReadFile(w.Path(LedgerFile))
	require.NoError(t, err)

	require.NoError(t, w.AppendLedger(EventResultsWritten, ResultsFile, "def", nil))
	second, err := os.ReadFile(w.Path(LedgerFile))
	require.NoError(t, err)

	// Earlier lines are untouched; the file only grows.
	assert.True(t, strings.HasPrefix(string(second), string(first)))
	assert.Equal(t, 1, strings.Count(string(first), "\n"))
	assert.Equal(t, 2, strings.Count(string(second), "\n"))
}

func TestLedgerLinesAreCanonicalJSON(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.AppendLedger(EventPreregWritten, PreregFile, "abc", map[string]any{"CID": "y", "AEQ": "x"}))

	b, err := os.ReadFile(w.Path(LedgerFile))
	require.NoError(t, err)
	line := strings.TrimSuffix(string(b), "\n")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	assert.Equal(t, "prereg_written", decoded["event"])
	assert.Equal(t, "x", decoded["AEQ"])
	assert.NotEmpty(t, decoded["ts"])

	// Compact, sorted keys, one object per line.
	assert.NotContains(t, line, "\n")
	assert.NotContains(t, line, ": ")
	assert.Less(t, strings.Index(line, `"AEQ"`), strings.Index(line, `"CID"`))
}

func TestReadLedgerPreservesOrder(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.AppendLedger(EventPreregWritten, PreregFile, "a", nil))
	require.NoError(t, w.AppendLedger(EventBlindMapWritten, BlindMapFile, "b", nil))
	require.NoError(t, w.AppendLedger(EventResultsWritten, ResultsFile, "c", nil))

	entries, err := ReadLedger(w.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, EventPreregWritten, entries[0].Event)
	assert.Equal(t, EventBlindMapWritten, entries[1].Event)
	assert.Equal(t, EventResultsWritten, entries[2].Event)
	assert.Equal(t, "b", entries[1].SHA256)
}

func writeIntactRun(t *testing.T) (*Writer, Manifest) {
	t.Helper()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	sha, err := w.WriteArtifact(PreregFile, map[string]any{"seed": 1})
	require.NoError(t, err)
	require.NoError(t, w.AppendLedger(EventPreregWritten, PreregFile, sha, nil))

	sha, err = w.WriteArtifact(ResultsFile, map[string]any{"overall_pass": true})
	require.NoError(t, err)
	require.NoError(t, w.AppendLedger(EventResultsWritten, ResultsFile, sha, nil))

	m, err := w.WriteManifest("aeq0", "cid0")
	require.NoError(t, err)
	return w, m
}

func TestManifestCoversWritesAndLedger(t *testing.T) {
	t.Parallel()

	w, m := writeIntactRun(t)

	require.Len(t, m.Files, 3)
	for name, want := range m.Files {
		got, err := w.FileSHA256(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "manifest hash for %s", name)
	}

	read, err := ReadManifest(w.Dir())
	require.NoError(t, err)
	assert.Equal(t, m, read)
}

func TestVerifyCleanRun(t *testing.T) {
	t.Parallel()

	w, _ := writeIntactRun(t)
	problems, err := Verify(w.Dir())
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestVerifyDetectsTampering(t *testing.T) {
	t.Parallel()

	w, _ := writeIntactRun(t)

	// Flip a byte in results.json after the manifest sealed it.
	path := w.Path(ResultsFile)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	b[len(b)-2] ^= 0x01
	require.NoError(t, os.WriteFile(path, b, 0o644))

	problems, err := Verify(w.Dir())
	require.NoError(t, err)
	require.NotEmpty(t, problems)
	joined := strings.Join(problems, "\n")
	assert.Contains(t, joined, ResultsFile)
	assert.Contains(t, joined, "mismatch")
}

func TestVerifyDetectsMissingEvents(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	sha, err := w.WriteArtifact(PreregFile, map[string]any{"seed": 1})
	require.NoError(t, err)
	require.NoError(t, w.AppendLedger(EventPreregWritten, PreregFile, sha, nil))
	_, err = w.WriteManifest("aeq0", "cid0")
	require.NoError(t, err)

	problems, err := Verify(w.Dir())
	require.NoError(t, err)
	assert.Contains(t, strings.Join(problems, "\n"), "no results_written event")
}
