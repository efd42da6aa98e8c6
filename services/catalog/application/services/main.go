package services

import (
	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/cache"
	"github.com/saschaorth/item-catalog/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the catalog
// bounded context.
type Services struct {
	Catalog *CatalogService
}

// New wires the catalog services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	categoryRepo := postgres.NewCategoryRepository(a.Db)
	itemRepo := postgres.NewItemRepository(a.Db, a.EventBus)
	var itemCache *cache.ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}
	return &Services{
		Catalog: NewCatalogService(categoryRepo, itemRepo, itemCache),
	}
}
