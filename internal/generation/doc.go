// Package generation defines the boundary interface for the external
// distractor capability and its error taxonomy. Concrete implementations
// live under internal/platform.
package generation
