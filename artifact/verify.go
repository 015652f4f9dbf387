package artifact

import (
	"fmt"

	"github.com/rustyeddy/prereg/pkg/canon"
)

// Verify audits a completed run directory. It recomputes the content hash
// of every file the manifest names, checks the ledger's causal event order,
// and confirms that write-once artifacts still hash to the values their
// ledger entries recorded. It returns one human-readable problem string per
// violation; an empty slice means the directory is intact.
//
// An unreadable manifest or ledger is an error, not a problem: without them
// there is nothing to audit against.
func Verify(dir string) ([]string, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	entries, err := ReadLedger(dir)
	if err != nil {
		return nil, err
	}

	var problems []string

	// Manifest integrity: every listed file must hash to its recorded value.
	for name, want := range m.Files {
		got, err := canon.FileSHA256(inDir(dir, name))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: listed in manifest but unreadable: %v", name, err))
			continue
		}
		if got != want {
			problems = append(problems, fmt.Sprintf("%s: manifest hash mismatch: recorded %s, file is %s", name, want, got))
		}
	}

	// Ledger causal order: prereg first, blind map (if any) before results.
	order := map[string]int{}
	for i, e := range entries {
		if e.Event == "" || e.File == "" || e.SHA256 == "" || e.TS == "" {
			problems = append(problems, fmt.Sprintf("ledger line %d: missing required field", i+1))
		}
		if _, dup := order[e.Event]; !dup {
			order[e.Event] = i
		}
	}
	preregIdx, hasPrereg := order[EventPreregWritten]
	if !hasPrereg {
		problems = append(problems, "ledger: no prereg_written event")
	}
	if blindIdx, ok := order[EventBlindMapWritten]; ok && hasPrereg && blindIdx < preregIdx {
		problems = append(problems, "ledger: blind_map_written precedes prereg_written")
	}
	if resIdx, ok := order[EventResultsWritten]; ok {
		if hasPrereg && resIdx < preregIdx {
			problems = append(problems, "ledger: results_written precedes prereg_written")
		}
		if blindIdx, hasBlind := order[EventBlindMapWritten]; hasBlind && resIdx < blindIdx {
			problems = append(problems, "ledger: results_written precedes blind_map_written")
		}
	} else {
		problems = append(problems, "ledger: no results_written event")
	}

	// Write-once artifacts: the hash each ledger entry recorded must still
	// match the file on disk, since nothing rewrites them after the event.
	for _, e := range entries {
		got, err := canon.FileSHA256(inDir(dir, e.File))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: referenced by ledger but unreadable: %v", e.File, err))
			continue
		}
		if got != e.SHA256 {
			problems = append(problems, fmt.Sprintf("%s: ledger hash mismatch: recorded %s, file is %s", e.File, e.SHA256, got))
		}
	}

	return problems, nil
}
