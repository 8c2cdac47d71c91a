package quiz

// QuizCard is the pre-shuffle record for one card: the term, its
// authoritative correct answer, and the generated wrong answers, all
// normalized to the same visual style. This is the shape the quiz endpoint
// serves; shuffling into presented options is the consumer's concern.
type QuizCard struct {
	Term              string   `json:"term"`
	CorrectDefinition string   `json:"correctDefinition"`
	IncorrectAnswers  []string `json:"incorrectAnswers"`
}

// Question is a fully built multiple-choice question: the term, the options
// in randomized order, and the correct answer text for scoring. Derived
// state; never persisted.
type Question struct {
	Term    string   `json:"term"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
}
