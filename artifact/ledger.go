package artifact

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/prereg/pkg/canon"
)

// Ledger event kinds, in their causal order.
const (
	EventPreregWritten   = "prereg_written"
	EventBlindMapWritten = "blind_map_written"
	EventResultsWritten  = "results_written"
)

const tsFormat = "2006-01-02T15:04:05Z"

// Entry is the fixed part of a ledger line. Event-specific fields (AEQ/CID,
// overall_pass) ride alongside these in the same JSON object.
type Entry struct {
	Event  string `json:"event"`
	File   string `json:"file"`
	SHA256 string `json:"sha256"`
	TS     string `json:"ts"`
}

// AppendLedger appends one canonical JSON line to ledger.ndjson. The file is
// opened in append mode per event; lines are never rewritten or reordered.
// extra carries event-specific fields merged into the line.
func (w *Writer) AppendLedger(event, file, sha string, extra map[string]any) error {
	line := map[string]any{
		"event":  event,
		"file":   file,
		"sha256": sha,
		"ts":     time.Now().UTC().Format(tsFormat),
	}
	for k, v := range extra {
		line[k] = v
	}

	b, err := canon.Marshal(line)
	if err != nil {
		return fmt.Errorf("encode ledger event %s: %w", event, err)
	}

	f, err := os.OpenFile(w.Path(LedgerFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("append ledger event %s: %w", event, err)
	}
	return nil
}

// ReadLedger parses every line of a run directory's ledger, preserving
// append order. Unknown fields on a line are ignored.
func ReadLedger(dir string) ([]Entry, error) {
	f, err := os.Open(inDir(dir, LedgerFile))
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	var out []Entry
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("ledger line %d: %w", lineNo, err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return out, nil
}
