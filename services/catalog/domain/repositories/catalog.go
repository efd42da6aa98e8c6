package repositories

import (
	"context"

	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// CategoryRepository is the persistence interface for categories.
// The domain layer owns this interface; infrastructure implements it.
type CategoryRepository interface {
	// List returns all categories ordered by id.
	List(ctx context.Context) ([]*models.Category, error)

	// GetByID returns the category or ErrCategoryNotFound when zero rows match.
	GetByID(ctx context.Context, id int64) (*models.Category, error)
}

// ItemRepository is the persistence interface for items.
type ItemRepository interface {
	// ListByCategory returns all items in the category ordered by id.
	ListByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error)

	// Latest returns at most limit items across all categories, most
	// recently created first (descending id).
	Latest(ctx context.Context, limit int) ([]*models.Item, error)

	// GetByID returns the item or ErrItemNotFound when zero rows match.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// GetByIDAndCategory returns the item matching both ids, or ErrItemNotFound.
	GetByIDAndCategory(ctx context.Context, id, categoryID int64) (*models.Item, error)

	// Create persists a new item and returns it with its store-assigned id.
	Create(ctx context.Context, fields models.ItemFields) (*models.Item, error)

	// Update overwrites the item's fields. Returns ErrItemNotFound if the id
	// no longer exists.
	Update(ctx context.Context, id int64, fields models.ItemFields) error

	// Delete removes the item. Returns ErrItemNotFound if the id does not exist.
	Delete(ctx context.Context, id int64) error
}
