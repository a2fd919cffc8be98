package domain

import "time"

// User is the site owner. Provisioning keeps at most one row around:
// it updates the existing account instead of creating a second one.
type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
