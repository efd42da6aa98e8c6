package handlers

import (
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// GetCategoryItemsHandler handles GET /catalog/{categoryID}/.
type GetCategoryItemsHandler struct {
	base
}

// NewGetCategoryItemsHandler returns a GetCategoryItemsHandler backed by the given services.
func NewGetCategoryItemsHandler(a *app.Application, svc *appsvcs.Services) *GetCategoryItemsHandler {
	return &GetCategoryItemsHandler{base: newBase(a, svc)}
}

// Execute renders a category's items and their count.
func (h *GetCategoryItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		h.fail(w, r, catalogdomain.ErrCategoryNotFound)
		return
	}
	category, items, err := h.svc.Catalog.CategoryDetail(r.Context(), categoryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	pg, _ := h.page(w, r)
	h.render(w, r, http.StatusOK, "category_items", struct {
		page
		Category              *models.Category
		Items                 []*models.Item
		NumberOfCategoryItems int
	}{page: pg, Category: category, Items: items, NumberOfCategoryItems: len(items)})
}
