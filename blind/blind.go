// Package blind decouples condition identity from published labels. The
// mapping is a presentation-layer indirection only; it must never influence
// simulated outcomes.
package blind

import (
	"fmt"
	"math/rand"
)

// Map is the persisted real->blind label assignment for one run.
type Map struct {
	Seed        int64             `json:"seed"`
	RealToBlind map[string]string `json:"map_real_to_blind"`
}

// New shuffles the condition names on the run's RNG stream and assigns
// opaque labels C1..Cn in shuffled order.
func New(rng *rand.Rand, seed int64, conditions []string) Map {
	shuffled := make([]string, len(conditions))
	copy(shuffled, conditions)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	labels := make(map[string]string, len(shuffled))
	for idx, cond := range shuffled {
		labels[cond] = fmt.Sprintf("C%d", idx+1)
	}
	return Map{Seed: seed, RealToBlind: labels}
}

// Identity returns the unblinded mapping: every condition labels itself.
// Not persisted as an artifact.
func Identity(conditions []string) map[string]string {
	labels := make(map[string]string, len(conditions))
	for _, cond := range conditions {
		labels[cond] = cond
	}
	return labels
}
