package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text gains a period", input: "hello", expected: "hello."},
		{name: "existing period kept", input: "hello.", expected: "hello."},
		{name: "question mark kept", input: "is it so?", expected: "is it so?"},
		{name: "exclamation kept", input: "watch out!", expected: "watch out!"},
		{name: "whitespace trimmed", input: "  padded  ", expected: "padded."},
		{name: "letter label stripped", input: "A) a wrong answer", expected: "a wrong answer."},
		{name: "lowercase label stripped", input: "b. another option", expected: "another option."},
		{name: "numeric label stripped", input: "2: third option", expected: "third option."},
		{name: "label then whitespace", input: "  C)   spaced out  ", expected: "spaced out."},
		{name: "empty stays empty", input: "", expected: ""},
		{name: "whitespace only collapses to empty", input: "   ", expected: ""},
		{
			name:     "plain sentence untouched apart from period",
			input:    "The capital of France",
			expected: "The capital of France.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NormalizeAnswer(tt.input))
		})
	}
}
