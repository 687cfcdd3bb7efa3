package domain

import "time"

// User represents a registered member of the fellowship.
type User struct {
	ID             int64
	Username       string
	PasswordHash   string
	DisplayName    string
	Email          string
	ProfilePicture *string
	CreatedAt      time.Time
}
