package storage

import (
	"time"

	"gorm.io/datatypes"
)

// Registration is the storage model for a tracked device. The unique index
// on DeviceID is what turns a duplicate registration into a constraint
// violation at insert time.
type Registration struct {
	ID           uint           `gorm:"primaryKey"`
	DeviceID     string         `gorm:"uniqueIndex;not null"`
	Location     datatypes.JSON `gorm:"type:json"`
	RegisteredAt time.Time      `gorm:"not null"`
}

func (Registration) TableName() string {
	return "registrations"
}

// Luggage is the storage model for a registered bag. Provider credentials
// never appear here, see LuggageCredential.
type Luggage struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      string    `gorm:"index;not null"`
	LuggageName string    `gorm:"not null"`
	IMEI        string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (Luggage) TableName() string {
	return "luggage"
}

// LuggageCredential is the vault row for a luggage record's provider
// account. One row per luggage id, removed together with the record.
type LuggageCredential struct {
	ID        uint   `gorm:"primaryKey"`
	LuggageID int64  `gorm:"uniqueIndex;not null"`
	Account   string `gorm:"not null"`
	Password  string `gorm:"not null"`
}

func (LuggageCredential) TableName() string {
	return "luggage_credentials"
}
