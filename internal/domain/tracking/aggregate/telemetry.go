package aggregate

// Telemetry is a single point-in-time location and battery reading for a
// device. Produced fresh per request and never stored.
type Telemetry struct {
	IMEI      string  `json:"imei"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Battery   int     `json:"battery"`
}
