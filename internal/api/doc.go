// Package api provides the HTTP handlers for the flashcard set API: CRUD
// over sets, nested card operations, and quiz generation. Handlers decode
// and validate requests, delegate to the store and quiz builder, and map
// errors to HTTP statuses without leaking internal detail.
package api
