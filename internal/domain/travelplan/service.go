package travelplan

import (
	"context"

	"bagtrack-server-go/internal/platform/errors"
)

// Builder constructs an itinerary from validated preferences. Swappable so
// an external generation collaborator can stand in for the built-in one.
type Builder interface {
	Build(ctx context.Context, prefs Preferences) (*Plan, error)
}

// Service validates preferences, applies defaults for the optional fields
// and delegates itinerary construction to the builder.
type Service struct {
	builder Builder
}

func NewService(builder Builder) *Service {
	if builder == nil {
		builder = NewItineraryBuilder()
	}
	return &Service{builder: builder}
}

// Generate produces a travel plan. Builder failures are normalized to a
// generic message; builder internals never reach the caller.
func (s *Service) Generate(ctx context.Context, prefs Preferences) (*Plan, error) {
	const op = "travelplan.generate"

	if prefs.StartDate == "" || prefs.EndDate == "" || prefs.Pace == "" ||
		len(prefs.Preferences) == 0 || len(prefs.MandatoryLocations) == 0 ||
		prefs.NumTravelers <= 0 {
		return nil, errors.New(errors.KindValidation, op, "missing required fields")
	}

	if prefs.ExcludedLocations == nil {
		prefs.ExcludedLocations = []string{}
	}
	if prefs.SpecificInterests == nil {
		prefs.SpecificInterests = []string{}
	}

	plan, err := s.builder.Build(ctx, prefs)
	if err != nil {
		return nil, errors.New(errors.KindInternal, op, "error generating travel plan")
	}

	return plan, nil
}
