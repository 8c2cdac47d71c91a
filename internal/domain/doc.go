// Package domain defines the core business entities of the application:
// flashcard sets, the cards they own, and the validation rules that keep
// them consistent. Entities here carry no persistence or transport concerns.
package domain
