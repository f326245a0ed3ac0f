package migrations

import (
	"gorm.io/gorm"
)

// Migration001Initial creates the core tables. Raw SQL keeps the shipped
// schema stable regardless of model changes in later releases.
type Migration001Initial struct{}

func (m *Migration001Initial) Version() string {
	return "001_initial"
}

func (m *Migration001Initial) Description() string {
	return "Create initial database schema with all core tables"
}

func (m *Migration001Initial) Up(db *gorm.DB) error {
	// The unique index on device_id doubles as the duplicate-registration
	// guard; inserts race safely against it.
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS registrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device_id VARCHAR(255) NOT NULL UNIQUE,
			location JSON,
			registered_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS luggage (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id VARCHAR(255) NOT NULL,
			luggage_name VARCHAR(255) NOT NULL,
			imei VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	// Vault table, one credential row per luggage record.
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS luggage_credentials (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			luggage_id INTEGER NOT NULL UNIQUE,
			account VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL
		)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_luggage_user_id ON luggage(user_id)`).Error; err != nil {
		return err
	}

	return nil
}

func (m *Migration001Initial) Down(db *gorm.DB) error {
	if err := db.Exec(`DROP TABLE IF EXISTS luggage_credentials`).Error; err != nil {
		return err
	}
	if err := db.Exec(`DROP TABLE IF EXISTS luggage`).Error; err != nil {
		return err
	}
	if err := db.Exec(`DROP TABLE IF EXISTS registrations`).Error; err != nil {
		return err
	}

	return nil
}
