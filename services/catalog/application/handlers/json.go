package handlers

import (
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/errhttp"
	"github.com/saschaorth/item-catalog/pkg/httpx"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// CategoryJSON is one element of the categories listing.
type CategoryJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemJSON is one element of the item listings. Category is the category
// name, not its id.
type ItemJSON struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Name        string `json:"name"`
}

// CategoriesResponse is the body of GET /catalog/json.
type CategoriesResponse struct {
	Categories []CategoryJSON `json:"categories"`
}

// CategoryItemsResponse is the body of GET /catalog/{categoryID}/json.
type CategoryItemsResponse struct {
	CategoryItems []ItemJSON `json:"categoryItems"`
}

// CategoryItemResponse is the body of GET /catalog/{categoryID}/item/{itemID}/json.
// A single-element array, kept for compatibility with existing consumers.
type CategoryItemResponse struct {
	CategoryItem []ItemJSON `json:"categoryItem"`
}

// GetCategoriesJSONHandler handles GET /catalog/json.
type GetCategoriesJSONHandler struct {
	base
}

// NewGetCategoriesJSONHandler returns a GetCategoriesJSONHandler backed by the given services.
func NewGetCategoriesJSONHandler(a *app.Application, svc *appsvcs.Services) *GetCategoriesJSONHandler {
	return &GetCategoriesJSONHandler{base: newBase(a, svc)}
}

// Execute lists all categories as JSON.
func (h *GetCategoriesJSONHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Catalog.Categories(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]CategoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryJSON{ID: c.ID, Name: c.Name})
	}
	httpx.JSON(w, http.StatusOK, CategoriesResponse{Categories: out})
}

// GetCategoryItemsJSONHandler handles GET /catalog/{categoryID}/json.
type GetCategoryItemsJSONHandler struct {
	base
}

// NewGetCategoryItemsJSONHandler returns a GetCategoryItemsJSONHandler backed by the given services.
func NewGetCategoryItemsJSONHandler(a *app.Application, svc *appsvcs.Services) *GetCategoryItemsJSONHandler {
	return &GetCategoryItemsJSONHandler{base: newBase(a, svc)}
}

// Execute lists a category's items as JSON.
func (h *GetCategoryItemsJSONHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		errhttp.WriteError(w, catalogdomain.ErrCategoryNotFound)
		return
	}
	category, items, err := h.svc.Catalog.CategoryDetail(r.Context(), categoryID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]ItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, itemJSONFrom(category, item))
	}
	httpx.JSON(w, http.StatusOK, CategoryItemsResponse{CategoryItems: out})
}

// GetItemJSONHandler handles GET /catalog/{categoryID}/item/{itemID}/json.
type GetItemJSONHandler struct {
	base
}

// NewGetItemJSONHandler returns a GetItemJSONHandler backed by the given services.
func NewGetItemJSONHandler(a *app.Application, svc *appsvcs.Services) *GetItemJSONHandler {
	return &GetItemJSONHandler{base: newBase(a, svc)}
}

// Execute returns the single item as JSON. Unlike the HTML detail page this
// endpoint requires the item to belong to the category; no match is a 404.
func (h *GetItemJSONHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		errhttp.WriteError(w, catalogdomain.ErrCategoryNotFound)
		return
	}
	itemID, err := urlID(r, "itemID")
	if err != nil {
		errhttp.WriteError(w, catalogdomain.ErrItemNotFound)
		return
	}
	category, err := h.svc.Catalog.GetCategory(r.Context(), categoryID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	item, err := h.svc.Catalog.GetItemInCategory(r.Context(), itemID, categoryID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, CategoryItemResponse{
		CategoryItem: []ItemJSON{itemJSONFrom(category, item)},
	})
}

func itemJSONFrom(category *models.Category, item *models.Item) ItemJSON {
	return ItemJSON{Category: category.Name, Description: item.Description, Name: item.Name}
}
