package aggregate

import (
	"time"

	"bagtrack-server-go/internal/platform/errors"
)

// Location is a coordinate pair carried by QR-scanned payloads. The values
// are treated as opaque floating-point degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Registration binds a physical tracker to the system. At most one
// registration per DeviceID exists at any time; the record is never mutated
// after creation.
type Registration struct {
	ID           int       `json:"id"`
	DeviceID     string    `json:"deviceId"`
	Location     *Location `json:"location"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NewRegistration creates a registration stamped with the current time.
// Location is optional and stays nil unless a scan supplied one.
func NewRegistration(deviceID string, location *Location) (*Registration, error) {
	if deviceID == "" {
		return nil, errors.New(errors.KindValidation, "registration.new", "device id required")
	}

	return &Registration{
		DeviceID:     deviceID,
		Location:     location,
		RegisteredAt: time.Now(),
	}, nil
}
