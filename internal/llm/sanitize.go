package llm

import (
	"regexp"
	"strings"
)

var reCodeFence = regexp.MustCompile("(?i)^```(?:json)?\\s*|\\s*```$")

// StripCodeFence removes Markdown code-fence wrapping (with an optional
// language tag) from a model response, leaving the payload untouched.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = reCodeFence.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}
