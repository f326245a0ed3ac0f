package repository

import (
	"context"

	"bagtrack-server-go/internal/domain/luggage/aggregate"
)

// LuggageRepository is the boundary to the persistence layer for luggage
// records and their vaulted provider credentials.
type LuggageRepository interface {
	// Insert stores the record and its credentials; the credentials land in
	// the vault table, keyed by the generated luggage id.
	Insert(ctx context.Context, luggage *aggregate.Luggage, creds aggregate.Credentials) error
	ListByUserID(ctx context.Context, userID string) ([]*aggregate.Luggage, error)
	// DeleteByID removes the record and its vault entry. A missing record
	// surfaces as a not_found-kind error.
	DeleteByID(ctx context.Context, luggageID int64) error
	// FindCredentials returns the vaulted provider account for a luggage id.
	FindCredentials(ctx context.Context, luggageID int64) (*aggregate.Credentials, error)
}
