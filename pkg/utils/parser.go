package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyTimestamp = errors.New("timestamp is required")

// ParseTimestamp parses an ISO-8601 instant. Offsets are honoured; values without one are UTC.
func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, ErrEmptyTimestamp
	}

	if parsed, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return parsed, nil
	}

	// +0000 style offsets
	if parsed, err := time.Parse("2006-01-02T15:04:05Z0700", trimmed); err == nil {
		return parsed, nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, errors.New("invalid timestamp: " + trimmed)
}

// ParseDate validates an optional YYYY-MM-DD flight date. Empty input is allowed.
func ParseDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if _, err := time.ParseInLocation(DATE_LAYOUT, trimmed, time.UTC); err != nil {
		return "", err
	}
	return trimmed, nil
}

// CalendarStamp formats a timestamp the way calendar links expect:
// separators and fractional seconds removed, e.g. 20260130T100000Z.
func CalendarStamp(value string) (string, error) {
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return "", err
	}
	return parsed.UTC().Format(CALENDAR_LAYOUT), nil
}
