package gemini

// promptData is the data passed to the prompt template.
type promptData struct {
	Term       string
	Definition string
	Count      int
}

// distractorResponse is the JSON structure the model is asked to return.
type distractorResponse struct {
	IncorrectAnswers []string `json:"incorrectAnswers"`
}
