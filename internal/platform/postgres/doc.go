// Package postgres provides PostgreSQL implementations of the store
// interfaces. Flashcard sets are stored one aggregate per row with the card
// sub-collection embedded as JSONB, so reads and writes always cover the
// whole aggregate.
package postgres
