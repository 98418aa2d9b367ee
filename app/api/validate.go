package api

import (
	"regexp"
	"strings"
)

// Valid HGNC gene symbols: start with a letter, 1-20 characters of
// letters/digits/hyphens/underscores, never purely numeric. Invalid input is
// rejected here, before the engine is invoked.
var (
	validSymbolRe = regexp.MustCompile(`^[A-Z][A-Z0-9\-_]{0,19}$`)
	numericOnlyRe = regexp.MustCompile(`^\d+$`)
)

// sanitizeSymbol normalizes and validates a raw gene symbol. Returns the
// normalized symbol and whether it is valid.
func sanitizeSymbol(raw string) (string, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))

	if symbol == "" {
		return "", false
	}
	if numericOnlyRe.MatchString(symbol) {
		return "", false
	}
	if !validSymbolRe.MatchString(symbol) {
		return "", false
	}

	return symbol, true
}
