package service

import (
	"context"

	"bagtrack-server-go/internal/domain/tracking/aggregate"
	"bagtrack-server-go/internal/platform/errors"
)

// TokenBroker exchanges account credentials for a short-lived provider
// token. An empty token with a nil error means the credentials were
// rejected.
type TokenBroker interface {
	Authenticate(ctx context.Context, account, password string) (string, error)
}

// TelemetryFetcher retrieves the current reading for a device using a
// token valid for the duration of the call.
type TelemetryFetcher interface {
	GetLocation(ctx context.Context, token, imei string) (*aggregate.Telemetry, error)
}

// TrackingService composes the token broker and the telemetry fetcher into
// the single externally exposed track operation. Each call re-authenticates;
// tokens are never carried across requests.
type TrackingService struct {
	broker  TokenBroker
	fetcher TelemetryFetcher
}

func NewTrackingService(broker TokenBroker, fetcher TelemetryFetcher) *TrackingService {
	return &TrackingService{
		broker:  broker,
		fetcher: fetcher,
	}
}

// Track validates the inputs, acquires a token and fetches the current
// telemetry. An absent token surfaces as an auth-kind error carried as a
// server fault: upstream credential rejection is deliberately not
// distinguished from provider downtime, and callers must treat it as
// non-retryable with identical input.
func (s *TrackingService) Track(ctx context.Context, account, imei, password string) (*aggregate.Telemetry, error) {
	const op = "tracking.track"

	if account == "" || imei == "" || password == "" {
		return nil, errors.New(errors.KindValidation, op, "account, imei, and password are required")
	}

	token, err := s.broker.Authenticate(ctx, account, password)
	if err != nil {
		return nil, errors.Wrap(errors.KindInternal, op, "internal server error", err)
	}
	if token == "" {
		return nil, errors.New(errors.KindAuth, op, "failed to get access token")
	}

	reading, err := s.fetcher.GetLocation(ctx, token, imei)
	if err != nil {
		return nil, errors.Wrap(errors.KindInternal, op, "internal server error", err)
	}

	return reading, nil
}
