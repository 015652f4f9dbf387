// Package journal keeps a history of completed runs across output
// directories. The per-run ledger proves what happened inside one run; the
// journal answers "which runs have I done and how did they gate".
package journal

import "time"

// RunRecord is one completed run.
type RunRecord struct {
	RunID          string
	Time           time.Time
	OutDir         string
	Seed           int64
	AEQ            string
	CID            string
	Blind          bool
	BaselineSharpe float64
	AblationSharpe float64
	NegCtrlSharpe  float64
	DeltaSharpe    float64
	OverallPass    bool
}

type Journal interface {
	RecordRun(RunRecord) error
	Close() error
}
