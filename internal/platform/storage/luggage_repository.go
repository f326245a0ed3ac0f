package storage

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"bagtrack-server-go/internal/domain/luggage/aggregate"
	"bagtrack-server-go/internal/domain/luggage/repository"
	"bagtrack-server-go/internal/platform/errors"
)

type luggageRepository struct {
	db *gorm.DB
}

// NewLuggageRepository creates a luggage repository backed by the given
// database.
func NewLuggageRepository(db *gorm.DB) repository.LuggageRepository {
	return &luggageRepository{
		db: db,
	}
}

// Insert writes the luggage record and its vault row in one transaction, so
// a record never exists without its credentials or vice versa.
func (r *luggageRepository) Insert(ctx context.Context, luggage *aggregate.Luggage, creds aggregate.Credentials) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := &Luggage{
			UserID:      luggage.UserID,
			LuggageName: luggage.Name,
			IMEI:        luggage.IMEI,
			CreatedAt:   luggage.CreatedAt,
		}
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		credModel := &LuggageCredential{
			LuggageID: model.ID,
			Account:   creds.Account,
			Password:  creds.Password,
		}
		if err := tx.Create(credModel).Error; err != nil {
			return err
		}

		luggage.ID = model.ID
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.KindStorage, "luggage.insert", "failed to save luggage", err)
	}
	return nil
}

// ListByUserID returns the user's luggage records. Credentials are never
// joined in.
func (r *luggageRepository) ListByUserID(ctx context.Context, userID string) ([]*aggregate.Luggage, error) {
	var models []Luggage
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&models).Error; err != nil {
		return nil, errors.Wrap(errors.KindStorage, "luggage.list_by_user_id", "failed to find luggage", err)
	}

	records := make([]*aggregate.Luggage, len(models))
	for i, model := range models {
		records[i] = r.fromModel(&model)
	}
	return records, nil
}

// DeleteByID removes the luggage record and its vault row together. A
// missing record surfaces as a not_found-kind error.
func (r *luggageRepository) DeleteByID(ctx context.Context, luggageID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Luggage{}, luggageID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("luggage_id = ?", luggageID).Delete(&LuggageCredential{}).Error
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.KindNotFound, "luggage.delete_by_id", "luggage not found")
		}
		return errors.Wrap(errors.KindStorage, "luggage.delete_by_id", "failed to delete luggage", err)
	}
	return nil
}

// FindCredentials returns the vaulted provider account for a luggage id,
// or nil when the vault has no row for it.
func (r *luggageRepository) FindCredentials(ctx context.Context, luggageID int64) (*aggregate.Credentials, error) {
	var model LuggageCredential
	if err := r.db.WithContext(ctx).Where("luggage_id = ?", luggageID).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "luggage.find_credentials", "failed to find credentials", err)
	}
	return &aggregate.Credentials{
		Account:  model.Account,
		Password: model.Password,
	}, nil
}

func (r *luggageRepository) fromModel(model *Luggage) *aggregate.Luggage {
	return &aggregate.Luggage{
		ID:        model.ID,
		UserID:    model.UserID,
		Name:      model.LuggageName,
		IMEI:      model.IMEI,
		CreatedAt: model.CreatedAt,
	}
}
