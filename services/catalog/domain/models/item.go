package models

import "time"

// Item is the core aggregate of the catalog. Identity (ID) is owned by the
// persistence layer; the application never predicts or reuses ids.
type Item struct {
	ID          int64
	Name        string
	Description string
	CategoryID  int64
	UserID      int64 // owner — only this user may edit or delete the item
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemFields is the caller-supplied portion of an Item for create and update.
type ItemFields struct {
	Name        string
	Description string
	CategoryID  int64
	UserID      int64
}
