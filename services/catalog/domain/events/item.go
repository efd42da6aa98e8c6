package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicItemChanged is the Watermill topic published when an item is created,
// updated, or deleted.
const TopicItemChanged = "catalog.item.changed"

// Actions carried by ItemChangedEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ItemChangedEvent is published transactionally with every item mutation.
// The worker consumes it to keep the Redis read model in step with Postgres.
type ItemChangedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // schema version; increment on breaking changes
	Action      string    `json:"action"`
	ItemID      int64     `json:"item_id"`
	CategoryID  int64     `json:"category_id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
