// Package prereg builds the commitment record: the fixed configuration and
// hypotheses of a run, hashed before any result exists. Persisting this
// record first is the integrity property of the whole harness — thresholds
// cannot be adjusted after the evidence is in.
package prereg

import (
	"fmt"
	"math"

	"github.com/rustyeddy/prereg/pkg/canon"
	"github.com/rustyeddy/prereg/sim"
)

// Metric is the designated primary metric.
const Metric = "sharpe"

// idLen truncates AEQ/CID to 12 hex characters.
const idLen = 12

// Params is the preregistered configuration. Constructed once per run and
// passed by value; never process-wide mutable state.
type Params struct {
	NDays             int     `json:"n_days" yaml:"n_days"`
	FeeBps            float64 `json:"fee_bps" yaml:"fee_bps"`
	SlippageBps       float64 `json:"slippage_bps" yaml:"slippage_bps"`
	EntryZ            float64 `json:"entry_z" yaml:"entry_z"`
	BaselineSharpeMin float64 `json:"baseline_sharpe_min" yaml:"baseline_sharpe_min"`
	DeltaMin          float64 `json:"delta_min" yaml:"delta_min"`
	NegSharpeMax      float64 `json:"neg_sharpe_max" yaml:"neg_sharpe_max"`
}

// DefaultParams returns the preregistered defaults.
func DefaultParams() Params {
	return Params{
		NDays:             252,
		FeeBps:            1.0,
		SlippageBps:       2.0,
		EntryZ:            1.0,
		BaselineSharpeMin: 0.50,
		DeltaMin:          0.30,
		NegSharpeMax:      0.25,
	}
}

// Validate checks the configuration before it is committed.
func (p Params) Validate() error {
	if p.NDays < 2 {
		return fmt.Errorf("n_days must be at least 2, got %d", p.NDays)
	}
	if p.FeeBps < 0 || p.SlippageBps < 0 {
		return fmt.Errorf("fee_bps and slippage_bps must be non-negative")
	}
	if p.EntryZ <= 0 {
		return fmt.Errorf("entry_z must be positive, got %g", p.EntryZ)
	}
	for name, v := range map[string]float64{
		"baseline_sharpe_min": p.BaselineSharpeMin,
		"delta_min":           p.DeltaMin,
		"neg_sharpe_max":      p.NegSharpeMax,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
	}
	return nil
}

// Record is the persisted preregistration artifact.
//
// AEQ identifies the experiment configuration independent of seed; CID
// identifies one specific (configuration, seed) run instance.
type Record struct {
	Seed       int64    `json:"seed"`
	Params     Params   `json:"params"`
	Conditions []string `json:"conditions"`
	Metric     string   `json:"metric"`
	Notes      string   `json:"notes"`
	AEQ        string   `json:"AEQ"`
	CID        string   `json:"CID"`
}

// Conditions returns the declared condition set in preregistered order.
func Conditions() []string {
	modes := sim.Modes()
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		out = append(out, string(m))
	}
	return out
}

// Build assembles the commitment record for one run.
//
// AEQ hashes the canonical encoding of the configuration with the seed
// excluded, so identical parameters give identical AEQ across seeds. CID
// binds the seed: sha256("AEQ:seed") truncated.
func Build(p Params, seed int64) (Record, error) {
	if err := p.Validate(); err != nil {
		return Record{}, fmt.Errorf("prereg params: %w", err)
	}

	rec := Record{
		Seed:       seed,
		Params:     p,
		Conditions: Conditions(),
		Metric:     Metric,
		Notes:      "Deterministic preregistered signal-evaluation harness.",
	}

	commitment := map[string]any{
		"params":     rec.Params,
		"conditions": rec.Conditions,
		"metric":     rec.Metric,
		"notes":      rec.Notes,
	}
	b, err := canon.Marshal(commitment)
	if err != nil {
		return Record{}, fmt.Errorf("hash commitment: %w", err)
	}
	rec.AEQ = canon.SHA256Hex(b)[:idLen]
	rec.CID = canon.SHA256Hex([]byte(fmt.Sprintf("%s:%d", rec.AEQ, seed)))[:idLen]
	return rec, nil
}
