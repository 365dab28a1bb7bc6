package repository

import (
	"context"
	"hash/fnv"
	"math"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"
	"flightlookup-service/pkg/logger"
)

// Synthetic airports are scattered within a few degrees of this point
const (
	syntheticRefLat = 39.8283
	syntheticRefLng = -98.5795
	syntheticSpread = 5.0
)

// destinationRotation is the arrival pool for fixture departures
var destinationRotation = []string{"LAX", "SFO", "LHR", "CDG", "JFK"}

// FixtureAirports are the demo airports with real coordinates
var FixtureAirports = map[string]entity.AirportInfo{
	"JFK": {IATA: "JFK", Name: "John F. Kennedy International", Lat: 40.6413, Lng: -73.7781},
	"LHR": {IATA: "LHR", Name: "London Heathrow", Lat: 51.4700, Lng: -0.4543},
	"LAX": {IATA: "LAX", Name: "Los Angeles International", Lat: 33.9416, Lng: -118.4085},
	"CDG": {IATA: "CDG", Name: "Charles de Gaulle", Lat: 49.0097, Lng: 2.5479},
	"SFO": {IATA: "SFO", Name: "San Francisco International", Lat: 37.6213, Lng: -122.3790},
}

// fixtureFlights returns fresh copies of the demo flights
func fixtureFlights() []entity.UpstreamFlight {
	return []entity.UpstreamFlight{
		{
			Flight:       &entity.UpstreamFlightIdent{IATA: "BA123", ICAO: "BAW123"},
			FlightDate:   "2026-01-30",
			FlightStatus: "active",
			Departure:    &entity.UpstreamEndpoint{Airport: "London Heathrow", IATA: "LHR", Scheduled: "2026-01-30T10:00:00+00:00"},
			Arrival:      &entity.UpstreamEndpoint{Airport: "John F. Kennedy International", IATA: "JFK", Scheduled: "2026-01-30T13:00:00+00:00"},
			Airline:      &entity.UpstreamAirline{Name: "British Airways"},
		},
		{
			Flight:       &entity.UpstreamFlightIdent{IATA: "AA456", ICAO: "AAL456"},
			FlightDate:   "2026-01-30",
			FlightStatus: "scheduled",
			Departure:    &entity.UpstreamEndpoint{Airport: "John F. Kennedy International", IATA: "JFK", Scheduled: "2026-01-30T15:00:00+00:00"},
			Arrival:      &entity.UpstreamEndpoint{Airport: "Los Angeles International", IATA: "LAX", Scheduled: "2026-01-30T18:00:00+00:00"},
			Airline:      &entity.UpstreamAirline{Name: "American Airlines"},
		},
		{
			Flight:       &entity.UpstreamFlightIdent{IATA: "AF789", ICAO: "AFR789"},
			FlightDate:   "2026-01-30",
			FlightStatus: "landed",
			Departure:    &entity.UpstreamEndpoint{Airport: "Charles de Gaulle", IATA: "CDG", Scheduled: "2026-01-30T08:00:00+00:00"},
			Arrival:      &entity.UpstreamEndpoint{Airport: "London Heathrow", IATA: "LHR", Scheduled: "2026-01-30T09:15:00+00:00"},
			Airline:      &entity.UpstreamAirline{Name: "Air France"},
		},
	}
}

// FixtureRepository serves demo data with the same shapes as the live provider.
// It never fails.
type FixtureRepository struct {
	logger logger.Logger
}

// NewFixtureRepository creates the mock lookup service
func NewFixtureRepository(logger logger.Logger) repository.LookupService {
	return &FixtureRepository{logger: logger}
}

// LookupFlight returns the demo flights whose IATA or ICAO number matches.
// Date is ignored.
func (r *FixtureRepository) LookupFlight(ctx context.Context, flightIATA, date string) ([]entity.UpstreamFlight, error) {
	matches := make([]entity.UpstreamFlight, 0)
	for _, flight := range fixtureFlights() {
		if flight.Flight.IATA == flightIATA || flight.Flight.ICAO == flightIATA {
			matches = append(matches, flight)
		}
	}
	return matches, nil
}

// LookupDeparturesByAirport rewrites every demo flight to depart from depIATA
// and rotates the arrivals through the pool without depIATA.
func (r *FixtureRepository) LookupDeparturesByAirport(ctx context.Context, depIATA, date string) ([]entity.UpstreamFlight, error) {
	pool := make([]string, 0, len(destinationRotation))
	for _, code := range destinationRotation {
		if code != depIATA {
			pool = append(pool, code)
		}
	}

	departureName := "Local Airport"
	if airport, ok := FixtureAirports[depIATA]; ok {
		departureName = airport.Name
	}

	flights := fixtureFlights()
	for i := range flights {
		departure := *flights[i].Departure
		departure.IATA = depIATA
		departure.Airport = departureName
		flights[i].Departure = &departure

		arrivalCode := pool[i%4]
		arrivalName := "Destination Airport"
		if airport, ok := FixtureAirports[arrivalCode]; ok {
			arrivalName = airport.Name
		}
		arrival := *flights[i].Arrival
		arrival.IATA = arrivalCode
		arrival.Airport = arrivalName
		flights[i].Arrival = &arrival
	}

	r.logger.Debug("Serving fixture departures", "airport", depIATA, "count", len(flights))
	return flights, nil
}

// LookupAirport returns the fixture airport or synthesizes one with stable coordinates
func (r *FixtureRepository) LookupAirport(ctx context.Context, iata string) (*entity.AirportInfo, error) {
	if airport, ok := FixtureAirports[iata]; ok {
		return &airport, nil
	}

	airport := SyntheticAirport(iata)
	r.logger.Debug("Synthesized fixture airport", "iata", iata, "lat", airport.Lat, "lng", airport.Lng)
	return &airport, nil
}

// SyntheticAirport derives coordinates from the code so repeated calls agree
func SyntheticAirport(iata string) entity.AirportInfo {
	h := fnv.New64a()
	h.Write([]byte(iata))
	sum := h.Sum64()

	latOffset := float64(sum&0xffff)/0xffff*2 - 1
	lngOffset := float64((sum>>16)&0xffff)/0xffff*2 - 1

	return entity.AirportInfo{
		IATA:      iata,
		Name:      iata + " Airport",
		Lat:       round4(syntheticRefLat + latOffset*syntheticSpread),
		Lng:       round4(syntheticRefLng + lngOffset*syntheticSpread),
		Synthetic: true,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
