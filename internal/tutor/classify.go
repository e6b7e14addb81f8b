package tutor

import (
	"regexp"
	"strings"
)

var hintPrefix = regexp.MustCompile(`(?i)^hint:?\s*`)

// ClassifyReply labels generated text as a question when it contains a
// question mark anywhere, and as an explanation otherwise.
func ClassifyReply(text string) Kind {
	if strings.Contains(text, "?") {
		return KindQuestion
	}
	return KindExplanation
}

// IsCorrect reports whether an evaluation reads as a correct verdict: the
// text mentions "correct" in any case. "not correct" and "incorrect" also
// match.
func IsCorrect(evaluation string) bool {
	return strings.Contains(strings.ToLower(evaluation), "correct")
}

// ExtractHints returns the lines of text that mention "hint", with a
// leading "hint:" label stripped. The result is never nil.
func ExtractHints(text string) []string {
	hints := []string{}
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(strings.ToLower(line), "hint") {
			continue
		}
		hints = append(hints, strings.TrimSpace(hintPrefix.ReplaceAllString(line, "")))
	}
	return hints
}
