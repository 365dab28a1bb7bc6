package utils

import "strings"

// NormalizeCode trims and upper-cases an IATA airport or flight code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FirstNonEmpty returns the first value that is not blank
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
