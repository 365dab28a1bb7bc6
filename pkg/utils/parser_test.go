package utils

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339 with offset", "2026-01-30T10:00:00+00:00", time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC), false},
		{"rfc3339 non utc offset", "2026-01-30T12:00:00+02:00", time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC), false},
		{"fractional seconds", "2026-01-30T10:00:00.000Z", time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC), false},
		{"compact offset", "2026-01-30T10:00:00+0000", time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC), false},
		{"zoneless", "2026-01-30T10:00:00", time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC), false},
		{"space separated", "2026-01-30 10:00", time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC), false},
		{"empty", "  ", time.Time{}, true},
		{"garbage", "bad", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimestamp(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if got, err := ParseDate(""); err != nil || got != "" {
		t.Errorf("ParseDate(\"\") = %q, %v", got, err)
	}
	if got, err := ParseDate(" 2026-01-30 "); err != nil || got != "2026-01-30" {
		t.Errorf("ParseDate() = %q, %v", got, err)
	}
	if _, err := ParseDate("30/01/2026"); err == nil {
		t.Error("ParseDate() should reject non ISO dates")
	}
}

func TestCalendarStamp(t *testing.T) {
	got, err := CalendarStamp("2026-01-30T10:00:00.000+00:00")
	if err != nil {
		t.Fatalf("CalendarStamp() error: %v", err)
	}
	if got != "20260130T100000Z" {
		t.Errorf("CalendarStamp() = %q, want 20260130T100000Z", got)
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  jfk "); got != "JFK" {
		t.Errorf("NormalizeCode() = %q, want JFK", got)
	}
	if got := FirstNonEmpty("", " ", "AA123", "AAL123"); got != "AA123" {
		t.Errorf("FirstNonEmpty() = %q, want AA123", got)
	}
}
