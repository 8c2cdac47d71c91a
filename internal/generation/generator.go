package generation

import "context"

// DistractorCount is the number of incorrect answers requested per card.
const DistractorCount = 3

// DistractorGenerator defines the interface for producing plausible-but-wrong
// answer options for a flashcard. It is the boundary between the application
// core and the external generative-text capability: a remote, rate-limited,
// latency-bearing dependency that either returns usable distractors or a
// typed failure. No call may hang indefinitely; implementations honor the
// context's cancellation and deadline.
type DistractorGenerator interface {
	// GenerateDistractors returns exactly DistractorCount incorrect answers
	// for the given term, each of similar length and style to the correct
	// definition. The returned strings are raw candidates; the caller
	// normalizes them alongside the correct answer.
	GenerateDistractors(ctx context.Context, term, definition string) ([]string, error)
}
