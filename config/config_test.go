package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "outputs_unblind", cfg.Out)
	assert.Equal(t, int64(123), cfg.Seed)
	assert.Equal(t, 252, cfg.Params.NDays)
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "run.yaml", `
params:
  n_days: 100
  entry_z: 1.5
seed: 77
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Params.NDays)
	assert.Equal(t, 1.5, cfg.Params.EntryZ)
	assert.Equal(t, int64(77), cfg.Seed)
	// Unset fields keep their preregistered defaults.
	assert.Equal(t, 0.50, cfg.Params.BaselineSharpeMin)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "run.json", `{"params": {"n_days": 60}, "out": "runs/a"}`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Params.NDays)
	assert.Equal(t, "runs/a", cfg.Out)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad_n_days", `{"params": {"n_days": 1}}`},
		{"negative_fee", `{"params": {"fee_bps": -3}}`},
		{"garbage", `{{{not yaml or json`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromFile(writeTemp(t, "bad.json", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
