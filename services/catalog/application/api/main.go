package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	"github.com/saschaorth/item-catalog/services/catalog/application/handlers"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
)

// CatalogRoutes registers the catalog pages and JSON endpoints on the
// provided chi router. Mutating routes sit behind the login guard.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	guard := auth.RequireLogin(a.SessionStore, a.Logger)

	home := handlers.NewGetCategoriesHandler(a, svcs)
	categoryItems := handlers.NewGetCategoryItemsHandler(a, svcs)
	itemDetail := handlers.NewGetItemHandler(a, svcs)
	newItemForm := handlers.NewGetNewItemHandler(a, svcs)
	createItem := handlers.NewPostNewItemHandler(a, svcs)
	editItemForm := handlers.NewGetEditItemHandler(a, svcs)
	updateItem := handlers.NewPostEditItemHandler(a, svcs)
	deleteItemForm := handlers.NewGetDeleteItemHandler(a, svcs)
	deleteItem := handlers.NewPostDeleteItemHandler(a, svcs)
	categoriesJSON := handlers.NewGetCategoriesJSONHandler(a, svcs)
	categoryItemsJSON := handlers.NewGetCategoryItemsJSONHandler(a, svcs)
	itemJSON := handlers.NewGetItemJSONHandler(a, svcs)

	r.Get("/", home.Execute)
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", home.Execute)
		r.Get("/json", categoriesJSON.Execute)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Get("/item/new", newItemForm.Execute)
			r.Post("/item/new", createItem.Execute)
		})

		r.Route("/{categoryID}", func(r chi.Router) {
			r.Get("/", categoryItems.Execute)
			r.Get("/json", categoryItemsJSON.Execute)
			r.Get("/item/{itemID}", itemDetail.Execute)
			r.Get("/item/{itemID}/json", itemJSON.Execute)

			r.Group(func(r chi.Router) {
				r.Use(guard)
				r.Get("/item/{itemID}/edit", editItemForm.Execute)
				r.Post("/item/{itemID}/edit", updateItem.Execute)
				r.Get("/item/{itemID}/delete", deleteItemForm.Execute)
				r.Post("/item/{itemID}/delete", deleteItem.Execute)
			})
		})
	})
}
