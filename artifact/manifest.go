package artifact

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest maps every artifact written this run to its content hash,
// including the ledger itself hashed at manifest-construction time. The
// manifest is not ledger-logged (it would have to contain its own hash).
type Manifest struct {
	AEQ   string            `json:"AEQ"`
	CID   string            `json:"CID"`
	Files map[string]string `json:"files"`
}

// WriteManifest hashes every artifact recorded so far plus the current
// ledger, then persists artifacts_manifest.json.
func (w *Writer) WriteManifest(aeq, cid string) (Manifest, error) {
	m := Manifest{
		AEQ:   aeq,
		CID:   cid,
		Files: make(map[string]string, len(w.written)+1),
	}
	for _, name := range w.written {
		sha, err := w.FileSHA256(name)
		if err != nil {
			return Manifest{}, fmt.Errorf("manifest: %w", err)
		}
		m.Files[name] = sha
	}
	sha, err := w.FileSHA256(LedgerFile)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	m.Files[LedgerFile] = sha

	if _, err := w.writeJSON(ManifestFile, m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// ReadManifest loads a run directory's manifest.
func ReadManifest(dir string) (Manifest, error) {
	b, err := os.ReadFile(inDir(dir, ManifestFile))
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}
