package quiz

import "math/rand"

// RandSource supplies the randomness for option shuffling. *rand.Rand
// satisfies it; tests inject a seeded source to assert exact permutations.
type RandSource interface {
	// Intn returns a uniform random int in [0, n).
	Intn(n int) int
}

// Ensure the stdlib source satisfies the interface
var _ RandSource = (*rand.Rand)(nil)

// Shuffle permutes options in place using the Fisher-Yates algorithm, which
// gives every permutation equal probability so the correct answer carries no
// positional bias.
func Shuffle(rng RandSource, options []string) {
	for i := len(options) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		options[i], options[j] = options[j], options[i]
	}
}
