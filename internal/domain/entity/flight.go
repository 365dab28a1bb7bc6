// internal/domain/entity/flight.go
package entity

// Flight is the canonical flight record returned to callers.
// ID is the position inside its result batch and is not globally stable.
type Flight struct {
	ID           int     `json:"id" bson:"id"`
	FlightNumber string  `json:"flightNumber" bson:"flightNumber"`
	Origin       string  `json:"origin" bson:"origin"`
	Destination  string  `json:"destination" bson:"destination"`
	StartTime    *string `json:"startTime" bson:"startTime,omitempty"`
	EndTime      *string `json:"endTime" bson:"endTime,omitempty"`
	Duration     string  `json:"duration" bson:"duration"`
	Status       string  `json:"status" bson:"status"`
	Airline      string  `json:"airline" bson:"airline"`
}

// EnrichedFlight is a Flight annotated with map data for its destination
type EnrichedFlight struct {
	Flight
	DestinationIATA   string       `json:"destinationIata,omitempty"`
	DestinationName   string       `json:"destinationName"`
	DestinationCoords *AirportInfo `json:"destinationCoords"`
}

// RouteLine connects the searched airport to one coordinated destination
type RouteLine struct {
	From AirportInfo `json:"from"`
	To   AirportInfo `json:"to"`
}

// DepartureSearchResult is the outcome of an enriched airport departures search.
// Origin is nil when the searched airport could not be resolved; Routes is then empty.
type DepartureSearchResult struct {
	Airport string           `json:"airport"`
	Origin  *AirportInfo     `json:"origin"`
	Flights []EnrichedFlight `json:"flights"`
	Routes  []RouteLine      `json:"routes"`
}
