package domain

import "time"

// Donation statuses as recorded after the payment step.
const (
	DonationStatusCompleted = "completed"
)

// Donation is a recorded contribution tied to a purpose and an external
// transaction reference.
type Donation struct {
	ID            int64
	UserID        *int64
	Amount        int64
	Purpose       string
	Status        string
	TransactionID *string
	CreatedAt     time.Time
}
