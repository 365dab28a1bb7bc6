package utils

// Constants
const (
	DATE_LAYOUT     = "2006-01-02"
	CALENDAR_LAYOUT = "20060102T150405Z"
)

// timestampLayouts are tried in order after RFC3339 fails. Zoneless values are read as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}
