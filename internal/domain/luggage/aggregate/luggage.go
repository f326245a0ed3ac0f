package aggregate

import (
	"time"

	"bagtrack-server-go/internal/platform/errors"
)

// Luggage is the business record for a registered bag. Provider
// credentials are deliberately not part of this aggregate: they live in a
// separate vault keyed by the luggage id.
type Luggage struct {
	ID        int64     `json:"luggageId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"luggageName"`
	IMEI      string    `json:"imei"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials holds the owner's account for the external tracking
// provider. Stored apart from the luggage record and never returned by
// listing operations.
type Credentials struct {
	Account  string
	Password string
}

// NewLuggage validates and creates a luggage record.
func NewLuggage(userID, name, imei string) (*Luggage, error) {
	if userID == "" || name == "" || imei == "" {
		return nil, errors.New(errors.KindValidation, "luggage.new", "userId, luggageName, account, imei, and password are required")
	}

	return &Luggage{
		UserID:    userID,
		Name:      name,
		IMEI:      imei,
		CreatedAt: time.Now(),
	}, nil
}
