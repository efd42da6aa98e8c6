package handlers

import (
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// GetCategoriesHandler handles GET / and GET /catalog/.
type GetCategoriesHandler struct {
	base
}

// NewGetCategoriesHandler returns a GetCategoriesHandler backed by the given services.
func NewGetCategoriesHandler(a *app.Application, svc *appsvcs.Services) *GetCategoriesHandler {
	return &GetCategoriesHandler{base: newBase(a, svc)}
}

// Execute renders the category overview with the most recently added items.
func (h *GetCategoriesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Catalog.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	latest, err := h.svc.Catalog.LatestItems(r.Context(), appsvcs.HomeLatestItems)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	pg, _ := h.page(w, r)
	h.render(w, r, http.StatusOK, "categories", struct {
		page
		Categories  []*models.Category
		LatestItems []*models.Item
	}{page: pg, Categories: categories, LatestItems: latest})
}
