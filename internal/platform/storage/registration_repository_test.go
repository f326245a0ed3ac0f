package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	regaggregate "bagtrack-server-go/internal/domain/registration/aggregate"
	"bagtrack-server-go/internal/platform/errors"
)

func TestRegistrationRepository_InsertAndFind(t *testing.T) {
	db, err := OpenForTest(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	repo := NewRegistrationRepository(db)

	reg, err := regaggregate.NewRegistration("DEV-001", &regaggregate.Location{Lat: 6.9, Lng: 79.8})
	require.NoError(t, err)

	err = repo.Insert(context.Background(), reg)
	require.NoError(t, err)
	assert.NotZero(t, reg.ID)

	found, err := repo.FindByDeviceID(context.Background(), "DEV-001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "DEV-001", found.DeviceID)
	require.NotNil(t, found.Location)
	assert.Equal(t, 6.9, found.Location.Lat)
	assert.Equal(t, 79.8, found.Location.Lng)
}

func TestRegistrationRepository_DuplicateInsertConflicts(t *testing.T) {
	db, err := OpenForTest(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	repo := NewRegistrationRepository(db)

	first, err := regaggregate.NewRegistration("DEV-002", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), first))

	second, err := regaggregate.NewRegistration("DEV-002", nil)
	require.NoError(t, err)
	err = repo.Insert(context.Background(), second)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConflict))

	// The losing insert leaves exactly one record behind.
	var count int64
	require.NoError(t, db.Model(&Registration{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegistrationRepository_FindMissingReturnsNil(t *testing.T) {
	db, err := OpenForTest(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	repo := NewRegistrationRepository(db)

	found, err := repo.FindByDeviceID(context.Background(), "DEV-MISSING")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRegistrationRepository_NoLocationStaysNil(t *testing.T) {
	db, err := OpenForTest(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	repo := NewRegistrationRepository(db)

	reg, err := regaggregate.NewRegistration("DEV-003", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), reg))

	found, err := repo.FindByDeviceID(context.Background(), "DEV-003")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Nil(t, found.Location)
}
