package handlers

import (
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// GetItemHandler handles GET /catalog/{categoryID}/item/{itemID}.
type GetItemHandler struct {
	base
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(a *app.Application, svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{base: newBase(a, svc)}
}

// Execute renders the item detail page. Category and item are looked up
// independently; the URL's category is trusted for breadcrumb links and is
// not cross-checked against the item's own category.
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categoryID, err := urlID(r, "categoryID")
	if err != nil {
		h.fail(w, r, catalogdomain.ErrCategoryNotFound)
		return
	}
	itemID, err := urlID(r, "itemID")
	if err != nil {
		h.fail(w, r, catalogdomain.ErrItemNotFound)
		return
	}

	category, err := h.svc.Catalog.GetCategory(r.Context(), categoryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	item, err := h.svc.Catalog.GetItem(r.Context(), itemID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	pg, identity := h.page(w, r)
	h.render(w, r, http.StatusOK, "item", struct {
		page
		Category *models.Category
		Item     *models.Item
		IsOwner  bool
	}{
		page:     pg,
		Category: category,
		Item:     item,
		IsOwner:  identity.LoggedIn() && identity.UserID == item.UserID,
	})
}
