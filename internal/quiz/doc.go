// Package quiz builds multiple-choice quizzes from flashcard sets. The
// builder fetches one set, sources three wrong answers per card from the
// distractor capability, normalizes every option to a common style, and
// shuffles each question's options with an injectable random source.
package quiz
