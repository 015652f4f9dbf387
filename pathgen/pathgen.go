package pathgen

import "math/rand"

// Path parameters are fixed by preregistration and are not tunable at run
// time: a lognormal-ish random walk with mild positive drift.
const (
	StartPrice = 100.0
	DriftMean  = 0.0004
	DriftSigma = 0.01
)

// NewRand returns a generator owned by a single component. Every consumer of
// randomness gets its own explicitly seeded instance, so adding or removing
// one consumer never perturbs another's stream.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Generate produces a price path of length n starting at StartPrice. Each
// step multiplies the previous price by (1 + r) with r drawn from
// Normal(DriftMean, DriftSigma) on the supplied generator.
//
// Identical generator state and n yield identical output. n < 1 is out of
// contract and must be rejected by the caller (config validation does).
func Generate(rng *rand.Rand, n int) []float64 {
	p := StartPrice
	out := make([]float64, 0, n)
	out = append(out, p)
	for i := 1; i < n; i++ {
		r := DriftMean + DriftSigma*rng.NormFloat64()
		p *= 1.0 + r
		out = append(out, p)
	}
	return out
}
