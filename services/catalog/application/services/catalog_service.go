package services

import (
	"context"
	"fmt"

	pkgcache "github.com/saschaorth/item-catalog/pkg/cache"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
	"github.com/saschaorth/item-catalog/services/catalog/domain/repositories"
	domainsvcs "github.com/saschaorth/item-catalog/services/catalog/domain/services"
)

// HomeLatestItems is how many recent items the category overview shows.
const HomeLatestItems = 4

// CatalogService orchestrates category and item reads plus owner-scoped item
// mutations. Item detail reads are served from Redis when available; event
// publishing is handled by the repository layer (outbox pattern).
type CatalogService struct {
	categories repositories.CategoryRepository
	items      repositories.ItemRepository
	cache      *pkgcache.ItemCache
}

// NewCatalogService returns a CatalogService wired with the given
// repositories and cache. A nil cache disables the read-through path.
func NewCatalogService(categories repositories.CategoryRepository, items repositories.ItemRepository, itemCache *pkgcache.ItemCache) *CatalogService {
	return &CatalogService{categories: categories, items: items, cache: itemCache}
}

// Categories returns all categories.
func (s *CatalogService) Categories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns a single category by id.
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// CategoryDetail returns the category and all of its items.
func (s *CatalogService) CategoryDetail(ctx context.Context, id int64) (*models.Category, []*models.Item, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get category: %w", err)
	}
	items, err := s.items.ListByCategory(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list category items: %w", err)
	}
	return category, items, nil
}

// LatestItems returns at most limit items across all categories, most
// recently created first.
func (s *CatalogService) LatestItems(ctx context.Context, limit int) ([]*models.Item, error) {
	items, err := s.items.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("latest items: %w", err)
	}
	return items, nil
}

// GetItem retrieves an item using a read-through cache pattern:
//  1. Check Redis first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache != nil {
		// Misses and transient cache errors both fall through to Postgres.
		if cached, err := s.cache.Get(ctx, id); err == nil {
			return &models.Item{
				ID:          cached.ID,
				Name:        cached.Name,
				Description: cached.Description,
				CategoryID:  cached.CategoryID,
				UserID:      cached.UserID,
				CreatedAt:   cached.CreatedAt,
			}, nil
		}
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), cachedFromItem(item))
		}()
	}

	return item, nil
}

// GetItemInCategory returns the item only when it belongs to the category;
// otherwise ErrItemNotFound. Used by the single-item JSON endpoint.
func (s *CatalogService) GetItemInCategory(ctx context.Context, id, categoryID int64) (*models.Item, error) {
	item, err := s.items.GetByIDAndCategory(ctx, id, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get item in category: %w", err)
	}
	return item, nil
}

// CreateItem validates and persists a new item owned by fields.UserID.
// Nothing is written when validation fails.
func (s *CatalogService) CreateItem(ctx context.Context, fields models.ItemFields) (*models.Item, error) {
	if err := domainsvcs.ValidateItemFields(fields.Name, fields.Description); err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidItemFields, err)
	}
	if _, err := s.categories.GetByID(ctx, fields.CategoryID); err != nil {
		return nil, fmt.Errorf("item category: %w", err)
	}
	item, err := s.items.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// UpdateItem overwrites an existing item's fields on behalf of actorID.
// Validation and the ownership check both run before anything is written, so
// a rejected update leaves the stored record untouched.
func (s *CatalogService) UpdateItem(ctx context.Context, actorID, itemID int64, fields models.ItemFields) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if item.UserID != actorID {
		return catalogdomain.ErrNotItemOwner
	}
	if err := domainsvcs.ValidateItemFields(fields.Name, fields.Description); err != nil {
		return fmt.Errorf("%w: %w", catalogdomain.ErrInvalidItemFields, err)
	}
	fields.UserID = item.UserID
	if err := s.items.Update(ctx, itemID, fields); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), itemID)
	}
	return nil
}

// DeleteItem removes an item on behalf of actorID after the ownership check.
func (s *CatalogService) DeleteItem(ctx context.Context, actorID, itemID int64) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if item.UserID != actorID {
		return catalogdomain.ErrNotItemOwner
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), itemID)
	}
	return nil
}

func cachedFromItem(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CategoryID:  item.CategoryID,
		UserID:      item.UserID,
		CreatedAt:   item.CreatedAt,
	}
}
