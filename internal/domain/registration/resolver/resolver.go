package resolver

import (
	"strings"

	"github.com/bytedance/sonic"

	"bagtrack-server-go/internal/domain/registration/aggregate"
	"bagtrack-server-go/internal/platform/errors"
)

// Input carries the two ways a caller can identify a device: a typed id or
// a raw QR scan payload.
type Input struct {
	DeviceID string
	Scanned  string
}

// Resolved is the single identifier (plus optional scan-supplied location)
// the registry operates on.
type Resolved struct {
	DeviceID string
	Location *aggregate.Location
}

// scannedPayload is the structured form a QR scan is expected to encode.
type scannedPayload struct {
	DeviceID string              `json:"deviceId"`
	Location *aggregate.Location `json:"location"`
}

// Resolve normalizes a device identifier from either direct entry or a
// scanned payload. The scanned payload takes precedence over the typed id.
// Pure function of its input; no side effects.
func Resolve(in Input) (*Resolved, error) {
	const op = "resolver.resolve"

	if in.DeviceID == "" && in.Scanned == "" {
		return nil, errors.New(errors.KindValidation, op, "must supply a device id or scan")
	}

	if in.Scanned != "" {
		var payload scannedPayload
		if err := sonic.UnmarshalString(in.Scanned, &payload); err != nil {
			return nil, errors.New(errors.KindValidation, op, "invalid scan format")
		}
		if strings.TrimSpace(payload.DeviceID) == "" {
			return nil, errors.New(errors.KindValidation, op, "device id required")
		}
		return &Resolved{
			DeviceID: strings.TrimSpace(payload.DeviceID),
			Location: payload.Location,
		}, nil
	}

	if strings.TrimSpace(in.DeviceID) == "" {
		return nil, errors.New(errors.KindValidation, op, "device id required")
	}

	return &Resolved{DeviceID: strings.TrimSpace(in.DeviceID)}, nil
}
