package service

import (
	"context"

	"bagtrack-server-go/internal/domain/registration/aggregate"
	"bagtrack-server-go/internal/domain/registration/repository"
	"bagtrack-server-go/internal/platform/errors"
)

// NavigateLuggageRegistration is the navigation hint returned to the caller
// after a successful registration. It is an opaque contract with the UI,
// not a control-flow instruction.
const NavigateLuggageRegistration = "proceed to luggage registration"

// RegistrationService enforces one registration per device id.
type RegistrationService struct {
	repo repository.RegistrationRepository
}

func NewRegistrationService(repo repository.RegistrationRepository) *RegistrationService {
	return &RegistrationService{repo: repo}
}

// Result carries the created registration and the next UI step.
type Result struct {
	Registration *aggregate.Registration
	NavigateTo   string
}

// Register creates a registration for the resolved device id. The
// duplicate check is the store's unique constraint: the insert itself is
// the atomic conflict detector, so two concurrent registrations of the same
// id cannot both succeed.
func (s *RegistrationService) Register(
	ctx context.Context,
	deviceID string,
	location *aggregate.Location,
) (*Result, error) {
	const op = "registration.register"

	reg, err := aggregate.NewRegistration(deviceID, location)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, reg); err != nil {
		if errors.IsKind(err, errors.KindConflict) {
			return nil, errors.New(errors.KindConflict, op, "Device already registered.")
		}
		return nil, errors.Wrap(errors.KindStorage, op, "server error", err)
	}

	return &Result{
		Registration: reg,
		NavigateTo:   NavigateLuggageRegistration,
	}, nil
}

// Lookup returns the registration for a device id, or nil when absent.
func (s *RegistrationService) Lookup(ctx context.Context, deviceID string) (*aggregate.Registration, error) {
	reg, err := s.repo.FindByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "registration.lookup", "server error", err)
	}
	return reg, nil
}
