package repository

import (
	"context"

	"bagtrack-server-go/internal/domain/registration/aggregate"
)

// RegistrationRepository is the boundary to the persistence layer for
// device registrations. Insert relies on the store's unique constraint on
// the device id: a duplicate insert surfaces as a conflict-kind error, not
// as a separate existence check.
type RegistrationRepository interface {
	Insert(ctx context.Context, registration *aggregate.Registration) error
	FindByDeviceID(ctx context.Context, deviceID string) (*aggregate.Registration, error)
}
