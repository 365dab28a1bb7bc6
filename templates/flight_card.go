package templates

import (
	"fmt"
	"net/url"
	"strings"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/pkg/utils"
)

const calendarBaseURL = "https://calendar.google.com/calendar/render"

// CARD_TEMPLATE renders one flight: number, airline, status, route, times, duration
const CARD_TEMPLATE = `✈️ %s (%s) [%s]
%s → %s
Departs: %s
Arrives: %s
Duration: %s`

// FlightCard renders a plain text card for a flight
func FlightCard(flight entity.Flight) string {
	return fmt.Sprintf(CARD_TEMPLATE,
		flight.FlightNumber,
		nonEmpty(flight.Airline, "Unknown Airline"),
		nonEmpty(flight.Status, "Unknown"),
		flight.Origin,
		flight.Destination,
		displayTime(flight.StartTime),
		displayTime(flight.EndTime),
		flight.Duration,
	)
}

// CalendarURL builds a Google Calendar event link for a flight. It returns ""
// when either time is missing or unparseable.
func CalendarURL(flight entity.Flight) string {
	if flight.StartTime == nil || flight.EndTime == nil {
		return ""
	}
	start, err := utils.CalendarStamp(*flight.StartTime)
	if err != nil {
		return ""
	}
	end, err := utils.CalendarStamp(*flight.EndTime)
	if err != nil {
		return ""
	}

	text := fmt.Sprintf("Flight %s (%s)", flight.FlightNumber, flight.Airline)
	details := fmt.Sprintf("Flight from %s to %s.\nStatus: %s\nDuration: %s",
		flight.Origin, flight.Destination, flight.Status, flight.Duration)
	location := fmt.Sprintf("%s to %s", flight.Origin, flight.Destination)

	var b strings.Builder
	b.WriteString(calendarBaseURL)
	b.WriteString("?action=TEMPLATE")
	b.WriteString("&text=" + encodeComponent(text))
	b.WriteString("&dates=" + start + "/" + end)
	b.WriteString("&details=" + encodeComponent(details))
	b.WriteString("&location=" + encodeComponent(location))
	return b.String()
}

// encodeComponent escapes like a URI component, with spaces as %20
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func displayTime(value *string) string {
	if value == nil {
		return "N/A"
	}
	parsed, err := utils.ParseTimestamp(*value)
	if err != nil {
		return "N/A"
	}
	return parsed.UTC().Format("Jan 2, 15:04 MST")
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
