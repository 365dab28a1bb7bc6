package usecase

// statusLabels maps provider flight_status codes to display statuses.
// Matching is exact and case-sensitive.
var statusLabels = map[string]string{
	"scheduled": "On Time",
	"active":    "In Air",
	"landed":    "Landed",
	"cancelled": "Cancelled",
	"incident":  "Incident",
	"diverted":  "Diverted",
}

// MapStatus returns the display status for a provider status code.
// Unknown codes are returned unchanged.
func MapStatus(raw string) string {
	if label, ok := statusLabels[raw]; ok {
		return label
	}
	return raw
}
