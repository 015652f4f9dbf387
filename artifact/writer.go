// Package artifact persists run artifacts as pretty-printed JSON, hashes
// each one as written, and chains the writes into an append-only ndjson
// ledger. The ledger is the audit trail proving artifacts reached disk in
// the declared order.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rustyeddy/prereg/pkg/canon"
)

// Artifact file names within a run directory.
const (
	PreregFile   = "prereg.json"
	BlindMapFile = "blind_map.json"
	ResultsFile  = "results.json"
	ManifestFile = "artifacts_manifest.json"
	LedgerFile   = "ledger.ndjson"
)

// Writer owns one run's output directory. One directory is one run;
// artifacts are written once and never revised, only the ledger is
// appended to.
type Writer struct {
	dir     string
	written []string
}

// NewWriter creates the run directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the run directory.
func (w *Writer) Dir() string { return w.dir }

// Path returns the on-disk path of a named artifact.
func (w *Writer) Path(name string) string { return inDir(w.dir, name) }

func inDir(dir, name string) string { return filepath.Join(dir, name) }

// WriteArtifact persists v as a pretty JSON artifact, records it for the
// manifest, and returns the content hash of the file as written.
func (w *Writer) WriteArtifact(name string, v any) (string, error) {
	sha, err := w.writeJSON(name, v)
	if err != nil {
		return "", err
	}
	w.written = append(w.written, name)
	return sha, nil
}

// FileSHA256 hashes a named artifact's current on-disk content.
func (w *Writer) FileSHA256(name string) (string, error) {
	return canon.FileSHA256(w.Path(name))
}

func (w *Writer) writeJSON(name string, v any) (string, error) {
	b, err := canon.Pretty(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	path := w.Path(name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	// Hash what actually reached disk, not the in-memory encoding.
	return canon.FileSHA256(path)
}
