package usecase

import (
	"fmt"
	"strings"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/pkg/utils"
)

const (
	unknownAirport      = "Unknown"
	unknownAirline      = "Unknown Airline"
	unknownFlightNumber = "N/A"
)

// NormalizeFlight converts one provider record into a Flight. Missing blocks are
// read as empty so the result always carries the documented placeholders.
func NormalizeFlight(raw entity.UpstreamFlight, index int, fallbackFlightNumber string) entity.Flight {
	departure := entity.UpstreamEndpoint{}
	if raw.Departure != nil {
		departure = *raw.Departure
	}
	arrival := entity.UpstreamEndpoint{}
	if raw.Arrival != nil {
		arrival = *raw.Arrival
	}
	ident := entity.UpstreamFlightIdent{}
	if raw.Flight != nil {
		ident = *raw.Flight
	}
	airline := entity.UpstreamAirline{}
	if raw.Airline != nil {
		airline = *raw.Airline
	}

	flightNumber := utils.FirstNonEmpty(ident.IATA, ident.ICAO, fallbackFlightNumber)
	if flightNumber == "" {
		flightNumber = unknownFlightNumber
	}

	airlineName := strings.TrimSpace(airline.Name)
	if airlineName == "" {
		airlineName = unknownAirline
	}

	startTime := optionalTimestamp(departure.Scheduled)
	endTime := optionalTimestamp(arrival.Scheduled)

	return entity.Flight{
		ID:           index,
		FlightNumber: flightNumber,
		Origin:       airportLabel(departure),
		Destination:  airportLabel(arrival),
		StartTime:    startTime,
		EndTime:      endTime,
		Duration:     FormatDuration(startTime, endTime),
		Status:       MapStatus(raw.FlightStatus),
		Airline:      airlineName,
	}
}

// NormalizeBatch normalizes every record, using its position as the Flight ID
func NormalizeBatch(raws []entity.UpstreamFlight, fallbackFlightNumber string) []entity.Flight {
	flights := make([]entity.Flight, 0, len(raws))
	for i, raw := range raws {
		flights = append(flights, NormalizeFlight(raw, i, fallbackFlightNumber))
	}
	return flights
}

func airportLabel(e entity.UpstreamEndpoint) string {
	name := strings.TrimSpace(e.Airport)
	code := strings.TrimSpace(e.IATA)

	switch {
	case name != "" && code != "":
		return fmt.Sprintf("%s (%s)", name, code)
	case code != "":
		return code
	case name != "":
		return name
	default:
		return unknownAirport
	}
}

func optionalTimestamp(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	v := value
	return &v
}
