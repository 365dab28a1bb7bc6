package usecase

import (
	"fmt"
	"time"

	"flightlookup-service/pkg/utils"
)

const durationUnavailable = "N/A"

// FormatDuration renders end-start as "{H}h {M}m", truncating each unit.
// Missing, unparseable or reversed timestamps yield "N/A".
func FormatDuration(start, end *string) string {
	if start == nil || end == nil {
		return durationUnavailable
	}

	startAt, err := utils.ParseTimestamp(*start)
	if err != nil {
		return durationUnavailable
	}
	endAt, err := utils.ParseTimestamp(*end)
	if err != nil {
		return durationUnavailable
	}

	diff := endAt.Sub(startAt)
	if diff < 0 {
		return durationUnavailable
	}

	hours := int64(diff / time.Hour)
	minutes := int64((diff % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
