package service

import (
	"context"
	"strconv"

	"bagtrack-server-go/internal/domain/luggage/aggregate"
	"bagtrack-server-go/internal/domain/luggage/repository"
	"bagtrack-server-go/internal/platform/errors"
)

// LuggageService manages luggage records for a single owning user.
type LuggageService struct {
	repo repository.LuggageRepository
}

func NewLuggageService(repo repository.LuggageRepository) *LuggageService {
	return &LuggageService{repo: repo}
}

// RegisterParams are the fields a luggage registration requires; all are
// mandatory.
type RegisterParams struct {
	UserID      string
	LuggageName string
	Account     string
	IMEI        string
	Password    string
}

// Register creates the luggage record and vaults the provider credentials
// under the new luggage id.
func (s *LuggageService) Register(ctx context.Context, params RegisterParams) (*aggregate.Luggage, error) {
	const op = "luggage.register"

	if params.UserID == "" || params.LuggageName == "" || params.Account == "" ||
		params.IMEI == "" || params.Password == "" {
		return nil, errors.New(errors.KindValidation, op, "userId, luggageName, account, imei, and password are required")
	}

	luggage, err := aggregate.NewLuggage(params.UserID, params.LuggageName, params.IMEI)
	if err != nil {
		return nil, err
	}

	creds := aggregate.Credentials{
		Account:  params.Account,
		Password: params.Password,
	}
	if err := s.repo.Insert(ctx, luggage, creds); err != nil {
		return nil, errors.Wrap(errors.KindStorage, op, "server error", err)
	}

	return luggage, nil
}

// List returns the luggage owned by a user. Credentials never appear in
// the result.
func (s *LuggageService) List(ctx context.Context, userID string) ([]*aggregate.Luggage, error) {
	const op = "luggage.list"

	if userID == "" {
		return nil, errors.New(errors.KindValidation, op, "userId is required")
	}

	records, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, op, "server error", err)
	}
	return records, nil
}

// Delete removes a luggage record by its id. The raw id must parse as a
// 64-bit integer; malformed input is rejected as an error, never silently
// coerced.
func (s *LuggageService) Delete(ctx context.Context, rawID string) error {
	const op = "luggage.delete"

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return errors.New(errors.KindInternal, op, "server error")
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return errors.New(errors.KindNotFound, op, "Luggage not found")
		}
		return errors.Wrap(errors.KindStorage, op, "server error", err)
	}
	return nil
}

// Credentials looks up the vaulted provider account for a luggage id.
func (s *LuggageService) Credentials(ctx context.Context, luggageID int64) (*aggregate.Credentials, error) {
	const op = "luggage.credentials"

	creds, err := s.repo.FindCredentials(ctx, luggageID)
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return nil, errors.New(errors.KindNotFound, op, "Luggage not found")
		}
		return nil, errors.Wrap(errors.KindStorage, op, "server error", err)
	}
	return creds, nil
}
