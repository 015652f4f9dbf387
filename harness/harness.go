// Package harness sequences one experiment run: commit the preregistration,
// optionally blind the labels, simulate the three conditions, evaluate the
// gates, and seal everything into content-addressed artifacts. The run is a
// single linear pipeline from seed to exit status.
package harness

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/prereg/artifact"
	"github.com/rustyeddy/prereg/blind"
	"github.com/rustyeddy/prereg/gates"
	"github.com/rustyeddy/prereg/journal"
	"github.com/rustyeddy/prereg/pathgen"
	"github.com/rustyeddy/prereg/pkg/canon"
	"github.com/rustyeddy/prereg/pkg/id"
	"github.com/rustyeddy/prereg/prereg"
	"github.com/rustyeddy/prereg/sim"
	"github.com/rustyeddy/prereg/stats"
)

// DeltaKey is the extra metrics entry reporting baseline minus ablation.
const DeltaKey = "delta_sharpe(baseline-ablation)"

// Sub-seed offsets per condition. Fixed constants mean a condition's stream
// is reproducible from the run seed alone, and adding or removing one
// condition never perturbs the others.
var seedOffsets = map[sim.Mode]int64{
	sim.Baseline:        1,
	sim.Ablation:        2,
	sim.NegativeControl: 3,
}

// Options configure one run.
type Options struct {
	OutDir string
	Seed   int64
	Blind  bool
	Reveal bool
	Params prereg.Params

	// Stdout receives the program's data output: the optional blind-map
	// echo and the final results JSON. Defaults to os.Stdout.
	Stdout io.Writer

	// Journal, when set, records the completed run. Optional.
	Journal journal.Journal
}

// Results is the results.json artifact.
type Results struct {
	AEQ         string                  `json:"AEQ"`
	CID         string                  `json:"CID"`
	Seed        int64                   `json:"seed"`
	Blind       bool                    `json:"blind"`
	Metrics     map[string]any          `json:"metrics"`
	Gates       map[string]gates.Record `json:"gates"`
	OverallPass bool                    `json:"overall_pass"`
}

// Summary is what a finished run hands back to the caller.
type Summary struct {
	Prereg  prereg.Record
	Results Results
	OutDir  string
}

// ExitCode maps the gate verdict to the process exit status: 0 when every
// gate passed, 2 otherwise. Gate failure is a data outcome, not a fault.
func (s *Summary) ExitCode() int {
	if s.Results.OverallPass {
		return 0
	}
	return 2
}

// Run executes one experiment end to end.
//
// The preregistration is persisted and ledger-logged before any simulation
// output exists; that ordering is the integrity guarantee, not an
// implementation convenience.
func Run(opts Options) (*Summary, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	rec, err := prereg.Build(opts.Params, opts.Seed)
	if err != nil {
		return nil, err
	}

	w, err := artifact.NewWriter(opts.OutDir)
	if err != nil {
		return nil, err
	}

	sha, err := w.WriteArtifact(artifact.PreregFile, rec)
	if err != nil {
		return nil, err
	}
	err = w.AppendLedger(artifact.EventPreregWritten, artifact.PreregFile, sha, map[string]any{
		"AEQ": rec.AEQ,
		"CID": rec.CID,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("AEQ", rec.AEQ).Str("CID", rec.CID).Int64("seed", opts.Seed).
		Msg("preregistration committed")

	// The base RNG stream belongs to the run itself and is consumed only by
	// blinding, never by a simulation.
	rng := pathgen.NewRand(opts.Seed)
	labels := blind.Identity(rec.Conditions)
	if opts.Blind {
		bm := blind.New(rng, opts.Seed, rec.Conditions)
		labels = bm.RealToBlind

		sha, err := w.WriteArtifact(artifact.BlindMapFile, bm)
		if err != nil {
			return nil, err
		}
		if err := w.AppendLedger(artifact.EventBlindMapWritten, artifact.BlindMapFile, sha, nil); err != nil {
			return nil, err
		}
		log.Info().Msg("condition labels blinded")
	}

	condResults := make(map[sim.Mode]sim.Result, len(seedOffsets))
	for _, mode := range sim.Modes() {
		condResults[mode] = simulate(mode, opts.Seed, opts.Params)
		log.Debug().Str("condition", string(mode)).
			Float64("sharpe", condResults[mode].Sharpe).
			Float64("final_equity", condResults[mode].FinalEquity).
			Msg("condition simulated")
	}

	baseS := condResults[sim.Baseline].Sharpe
	abltS := condResults[sim.Ablation].Sharpe
	negS := condResults[sim.NegativeControl].Sharpe
	verdict := gates.Evaluate(opts.Params, baseS, abltS, negS)
	log.Info().Bool("overall_pass", verdict.OverallPass).Msg("gates evaluated")

	results := Results{
		AEQ:   rec.AEQ,
		CID:   rec.CID,
		Seed:  opts.Seed,
		Blind: opts.Blind,
		Metrics: map[string]any{
			labels[string(sim.Baseline)]:        condResults[sim.Baseline],
			labels[string(sim.Ablation)]:        condResults[sim.Ablation],
			labels[string(sim.NegativeControl)]: condResults[sim.NegativeControl],
			DeltaKey:                            baseS - abltS,
		},
		Gates:       verdict.Gates,
		OverallPass: verdict.OverallPass,
	}

	sha, err = w.WriteArtifact(artifact.ResultsFile, results)
	if err != nil {
		return nil, err
	}
	err = w.AppendLedger(artifact.EventResultsWritten, artifact.ResultsFile, sha, map[string]any{
		"overall_pass": results.OverallPass,
	})
	if err != nil {
		return nil, err
	}

	if _, err := w.WriteManifest(rec.AEQ, rec.CID); err != nil {
		return nil, err
	}

	if opts.Reveal && opts.Blind {
		raw, err := os.ReadFile(w.Path(artifact.BlindMapFile))
		if err != nil {
			return nil, fmt.Errorf("reveal blind map: %w", err)
		}
		fmt.Fprintln(stdout, "BLIND MAP (reveal):")
		fmt.Fprintln(stdout, string(raw))
	}

	pretty, err := canon.Pretty(results)
	if err != nil {
		return nil, err
	}
	if _, err := stdout.Write(pretty); err != nil {
		return nil, fmt.Errorf("write results: %w", err)
	}

	if opts.Journal != nil {
		err := opts.Journal.RecordRun(journal.RunRecord{
			RunID:          id.New(),
			Time:           time.Now().UTC(),
			OutDir:         opts.OutDir,
			Seed:           opts.Seed,
			AEQ:            rec.AEQ,
			CID:            rec.CID,
			Blind:          opts.Blind,
			BaselineSharpe: baseS,
			AblationSharpe: abltS,
			NegCtrlSharpe:  negS,
			DeltaSharpe:    baseS - abltS,
			OverallPass:    results.OverallPass,
		})
		if err != nil {
			return nil, fmt.Errorf("journal run: %w", err)
		}
	}

	return &Summary{Prereg: rec, Results: results, OutDir: opts.OutDir}, nil
}

// simulate runs one condition on its own generator and price path.
func simulate(mode sim.Mode, seed int64, p prereg.Params) sim.Result {
	rng := pathgen.NewRand(seed + seedOffsets[mode])
	prices := pathgen.Generate(rng, p.NDays)
	rets := stats.Returns(prices)
	return sim.Run(mode, rets, sim.Params{
		EntryZ:      p.EntryZ,
		FeeBps:      p.FeeBps,
		SlippageBps: p.SlippageBps,
	})
}
