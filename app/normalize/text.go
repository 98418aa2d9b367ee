package normalize

import (
	"regexp"
	"strings"
)

// UniProt free text carries inline evidence tags that are resolved through
// the reference index instead; strip them from human-readable fields.
var evidenceTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s*\(PubMed:[^)]+\)`),
	regexp.MustCompile(`\s*\{ECO:[^}]+\}`),
	regexp.MustCompile(`\s*\[PubMed:[^\]]+\]`),
	regexp.MustCompile(`\s*\(ECO:[^)]+\)`),
}

var doubleSpace = regexp.MustCompile(`\s\s+`)

func cleanText(text string) string {
	if text == "" {
		return ""
	}
	for _, pattern := range evidenceTagPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(doubleSpace.ReplaceAllString(text, " "))
}
