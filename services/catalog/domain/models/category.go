package models

import "time"

// Category groups items. Categories are pre-seeded; the application reads
// them but never creates or mutates them through the shown flows.
type Category struct {
	ID        int64
	Name      string
	UserID    *int64 // optional owner; not consulted by access checks
	CreatedAt time.Time
	UpdatedAt time.Time
}
