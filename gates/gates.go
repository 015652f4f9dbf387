// Package gates applies the preregistered pass/fail thresholds to the three
// conditions' Sharpe values. Each gate records its observed value and
// threshold individually so a failure is attributable to a specific gate.
package gates

import "github.com/rustyeddy/prereg/prereg"

// Gate names, which double as keys in results.json.
const (
	BaselineSharpeMin = "baseline_sharpe_min"
	DeltaMin          = "delta_min"
	NegSharpeMax      = "neg_sharpe_max"
)

// Record is one gate's outcome. Exactly one of Min/Max is set, matching
// whether the gate is a floor or a ceiling.
type Record struct {
	Value float64  `json:"value"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Pass  bool     `json:"pass"`
}

// Verdict aggregates the three gates. OverallPass is the logical AND of the
// individual pass flags.
type Verdict struct {
	Gates       map[string]Record
	OverallPass bool
}

// Evaluate applies the three fixed gates:
//
//  1. baseline Sharpe >= baseline_sharpe_min
//  2. baseline Sharpe - ablation Sharpe >= delta_min
//  3. negative-control Sharpe <= neg_sharpe_max
func Evaluate(p prereg.Params, baselineSharpe, ablationSharpe, negSharpe float64) Verdict {
	delta := baselineSharpe - ablationSharpe

	g := map[string]Record{
		BaselineSharpeMin: {
			Value: baselineSharpe,
			Min:   ptr(p.BaselineSharpeMin),
			Pass:  baselineSharpe >= p.BaselineSharpeMin,
		},
		DeltaMin: {
			Value: delta,
			Min:   ptr(p.DeltaMin),
			Pass:  delta >= p.DeltaMin,
		},
		NegSharpeMax: {
			Value: negSharpe,
			Max:   ptr(p.NegSharpeMax),
			Pass:  negSharpe <= p.NegSharpeMax,
		},
	}

	overall := true
	for _, rec := range g {
		overall = overall && rec.Pass
	}
	return Verdict{Gates: g, OverallPass: overall}
}

func ptr(f float64) *float64 { return &f }
