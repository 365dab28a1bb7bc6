// internal/domain/entity/upstream.go
package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UpstreamEndpoint is the departure or arrival block of a provider flight record
type UpstreamEndpoint struct {
	Airport   string `json:"airport"`
	Timezone  string `json:"timezone"`
	IATA      string `json:"iata"`
	ICAO      string `json:"icao"`
	Terminal  string `json:"terminal"`
	Gate      string `json:"gate"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
	Actual    string `json:"actual"`
}

// UpstreamFlightIdent is the flight block of a provider flight record
type UpstreamFlightIdent struct {
	Number string `json:"number"`
	IATA   string `json:"iata"`
	ICAO   string `json:"icao"`
}

// UpstreamAirline is the airline block of a provider flight record
type UpstreamAirline struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
	ICAO string `json:"icao"`
}

// UpstreamFlight is one provider flight record. Any block may be missing.
type UpstreamFlight struct {
	FlightDate   string               `json:"flight_date"`
	FlightStatus string               `json:"flight_status"`
	Departure    *UpstreamEndpoint    `json:"departure"`
	Arrival      *UpstreamEndpoint    `json:"arrival"`
	Airline      *UpstreamAirline     `json:"airline"`
	Flight       *UpstreamFlightIdent `json:"flight"`
}

// ProviderError is the error envelope returned by the provider with a 200 status
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Info    string `json:"info"`
}

// FlightsResponse is the provider /flights envelope
type FlightsResponse struct {
	Data  []UpstreamFlight `json:"data"`
	Error *ProviderError   `json:"error"`
}

// UpstreamAirport is one provider /airports record
type UpstreamAirport struct {
	IATACode    string     `json:"iata_code"`
	AirportName string     `json:"airport_name"`
	Latitude    Coordinate `json:"latitude"`
	Longitude   Coordinate `json:"longitude"`
	CountryName string     `json:"country_name"`
	Timezone    string     `json:"timezone"`
}

// AirportsResponse is the provider /airports envelope
type AirportsResponse struct {
	Data  []UpstreamAirport `json:"data"`
	Error *ProviderError    `json:"error"`
}

// Coordinate accepts a JSON number or a numeric string. Valid is false for null or empty values.
type Coordinate struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Coordinate{}
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*c = Coordinate{}
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", raw, err)
	}
	*c = Coordinate{Value: v, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(strconv.FormatFloat(c.Value, 'f', -1, 64))
}
