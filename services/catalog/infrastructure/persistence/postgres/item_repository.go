package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/saschaorth/item-catalog/pkg/database"
	"github.com/saschaorth/item-catalog/pkg/events"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	domainevents "github.com/saschaorth/item-catalog/services/catalog/domain/events"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Mutations publish an ItemChangedEvent within the same transaction as the
// write (outbox pattern), so the read-model worker never sees a change that
// did not commit.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given pool and
// event bus. A nil bus disables event publishing (used by tests).
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

const itemColumns = "id, name, description, category_id, user_id, created_at, updated_at"

// ListByCategory returns all items in the category ordered by id.
func (r *ItemRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE category_id = $1 ORDER BY id", categoryID)
}

// Latest returns at most limit items across all categories, newest first.
// Descending id tracks creation order because ids are store-assigned and
// monotonic.
func (r *ItemRepository) Latest(ctx context.Context, limit int) ([]*models.Item, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items ORDER BY id DESC LIMIT $1", limit)
}

// GetByID returns the item with the given id, ErrItemNotFound on zero rows,
// or ErrRowAnomaly if the primary key matches more than one row.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	return r.queryOneItem(ctx, id,
		"SELECT "+itemColumns+" FROM items WHERE id = $1", id)
}

// GetByIDAndCategory returns the item matching both ids, or ErrItemNotFound.
func (r *ItemRepository) GetByIDAndCategory(ctx context.Context, id, categoryID int64) (*models.Item, error) {
	return r.queryOneItem(ctx, id,
		"SELECT "+itemColumns+" FROM items WHERE id = $1 AND category_id = $2", id, categoryID)
}

// Create persists a new item and returns it with its store-assigned id.
func (r *ItemRepository) Create(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	item := &models.Item{
		Name:        fields.Name,
		Description: fields.Description,
		CategoryID:  fields.CategoryID,
		UserID:      fields.UserID,
	}
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO items (name, description, category_id, user_id)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at, updated_at`,
			fields.Name, fields.Description, fields.CategoryID, fields.UserID,
		).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		return r.publishChanged(ctx, tx, domainevents.ActionCreated, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update overwrites the item's mutable fields.
// Returns ErrItemNotFound if the id no longer exists.
func (r *ItemRepository) Update(ctx context.Context, id int64, fields models.ItemFields) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE items SET name = $2, description = $3, category_id = $4 WHERE id = $1`,
			id, fields.Name, fields.Description, fields.CategoryID)
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update item rows: %w", err)
		}
		if n == 0 {
			return catalogdomain.ErrItemNotFound
		}
		return r.publishChanged(ctx, tx, domainevents.ActionUpdated, &models.Item{
			ID:          id,
			Name:        fields.Name,
			Description: fields.Description,
			CategoryID:  fields.CategoryID,
			UserID:      fields.UserID,
		})
	})
}

// Delete removes the item. Returns ErrItemNotFound if the id does not exist.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete item rows: %w", err)
		}
		if n == 0 {
			return catalogdomain.ErrItemNotFound
		}
		return r.publishChanged(ctx, tx, domainevents.ActionDeleted, &models.Item{ID: id})
	})
}

func (r *ItemRepository) publishChanged(ctx context.Context, tx *sql.Tx, action string, item *models.Item) error {
	if r.bus == nil {
		return nil
	}
	event := domainevents.ItemChangedEvent{
		EventID:     uuid.New(),
		Version:     1,
		Action:      action,
		ItemID:      item.ID,
		CategoryID:  item.CategoryID,
		UserID:      item.UserID,
		Name:        item.Name,
		Description: item.Description,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	events.InjectTrace(ctx, msg)
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicItemChanged, msg)
}

func (r *ItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ItemRepository) queryOneItem(ctx context.Context, id int64, query string, args ...any) (*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query item: %w", err)
		}
		return nil, catalogdomain.ErrItemNotFound
	}
	item, err := scanItem(rows)
	if err != nil {
		return nil, err
	}
	if rows.Next() {
		return nil, fmt.Errorf("item %d: %w", id, catalogdomain.ErrRowAnomaly)
	}
	return item, rows.Err()
}

func scanItem(rows *sql.Rows) (*models.Item, error) {
	var item models.Item
	if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.CategoryID,
		&item.UserID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &item, nil
}
