package quiz

import (
	"regexp"
	"strings"
)

// enumLabelPattern matches a leading enumeration label the model sometimes
// emits despite instructions, e.g. "A) ", "b. ", "3: ".
var enumLabelPattern = regexp.MustCompile(`^([A-Da-d]|[0-9]+)[).:]\s*`)

// NormalizeAnswer canonicalizes an answer option so that correct and
// incorrect options are visually consistent and scoring can use exact
// string equality: surrounding whitespace is trimmed, any leading
// enumeration label is stripped, and a terminal period is enforced when the
// text carries no terminal punctuation of its own.
func NormalizeAnswer(s string) string {
	s = strings.TrimSpace(s)
	s = enumLabelPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if s == "" {
		return s
	}

	switch s[len(s)-1] {
	case '.', '!', '?':
	default:
		s += "."
	}

	return s
}
