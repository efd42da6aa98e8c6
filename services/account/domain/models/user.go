package models

import "time"

// User is a local account bound to an OAuth identity. Users are created on
// first successful login for a new email and never deleted by the
// application.
type User struct {
	ID        int64
	Name      string
	Email     string // unique per provider identity
	CreatedAt time.Time
	UpdatedAt time.Time
}
