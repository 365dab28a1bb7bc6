package usecase

import (
	"regexp"
	"strings"
)

// matches only a parenthesised token at the end of the string
var destinationCodeRE = regexp.MustCompile(`\(([^()]+)\)\s*$`)

// ParseDestination splits a "<Name> (<IATA>)" display string into its name and code.
// Only the trailing parenthesised token is read as the code, so "A (B) (C)" yields
// name "A (B)" and code "C". ok is false when there is no trailing code; name is then
// the string up to its last " (" separator.
func ParseDestination(destination string) (name, code string, ok bool) {
	loc := destinationCodeRE.FindStringSubmatchIndex(destination)
	if loc == nil {
		name = destination
		if idx := strings.LastIndex(destination, " ("); idx >= 0 {
			name = destination[:idx]
		}
		return name, "", false
	}

	name = strings.TrimSpace(destination[:loc[0]])
	code = strings.TrimSpace(destination[loc[2]:loc[3]])
	if code == "" {
		return name, "", false
	}
	return name, code, true
}
