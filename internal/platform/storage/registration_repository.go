package storage

import (
	"context"
	stderrors "errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bagtrack-server-go/internal/domain/registration/aggregate"
	"bagtrack-server-go/internal/domain/registration/repository"
	"bagtrack-server-go/internal/platform/errors"

	"github.com/bytedance/sonic"
)

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a registration repository backed by the
// given database.
func NewRegistrationRepository(db *gorm.DB) repository.RegistrationRepository {
	return &registrationRepository{
		db: db,
	}
}

// Insert writes a registration. A duplicate device id trips the unique
// index and comes back as a conflict-kind error; there is no prior
// existence check, so concurrent inserts for the same device cannot both
// succeed.
func (r *registrationRepository) Insert(ctx context.Context, registration *aggregate.Registration) error {
	model, err := r.toModel(registration)
	if err != nil {
		return errors.Wrap(errors.KindStorage, "registration.insert", "failed to encode registration", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrap(errors.KindConflict, "registration.insert", "device already registered", err)
		}
		return errors.Wrap(errors.KindStorage, "registration.insert", "failed to save registration", err)
	}

	registration.ID = int(model.ID)
	return nil
}

// FindByDeviceID returns the registration for a device, or nil when none
// exists.
func (r *registrationRepository) FindByDeviceID(ctx context.Context, deviceID string) (*aggregate.Registration, error) {
	var model Registration
	if err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindStorage, "registration.find_by_device_id", "failed to find registration", err)
	}
	return r.fromModel(&model)
}

func (r *registrationRepository) toModel(registration *aggregate.Registration) (*Registration, error) {
	model := &Registration{
		DeviceID:     registration.DeviceID,
		RegisteredAt: registration.RegisteredAt,
	}

	if registration.Location != nil {
		raw, err := sonic.Marshal(registration.Location)
		if err != nil {
			return nil, err
		}
		model.Location = datatypes.JSON(raw)
	}

	return model, nil
}

func (r *registrationRepository) fromModel(model *Registration) (*aggregate.Registration, error) {
	registration := &aggregate.Registration{
		ID:           int(model.ID),
		DeviceID:     model.DeviceID,
		RegisteredAt: model.RegisteredAt,
	}

	if len(model.Location) > 0 {
		var location aggregate.Location
		if err := sonic.Unmarshal(model.Location, &location); err != nil {
			return nil, errors.Wrap(errors.KindStorage, "registration.from_model", "failed to decode location", err)
		}
		registration.Location = &location
	}

	return registration, nil
}
