package entity

// AirportInfo holds the coordinates of an airport keyed by IATA code.
// Synthetic is set when the coordinates were generated by the fixture source.
type AirportInfo struct {
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Synthetic bool    `json:"synthetic,omitempty"`
}
