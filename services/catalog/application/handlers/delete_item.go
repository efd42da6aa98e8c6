package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// GetDeleteItemHandler handles GET /catalog/{categoryID}/item/{itemID}/delete (guarded).
type GetDeleteItemHandler struct {
	base
}

// NewGetDeleteItemHandler returns a GetDeleteItemHandler backed by the given services.
func NewGetDeleteItemHandler(a *app.Application, svc *appsvcs.Services) *GetDeleteItemHandler {
	return &GetDeleteItemHandler{base: newBase(a, svc)}
}

// Execute renders the delete confirmation page for the item's owner.
func (h *GetDeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
		return
	}
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

	item, err := h.svc.Catalog.GetItem(r.Context(), itemID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if item.UserID != identity.UserID {
		h.flash(w, r, "You must own an item to delete it", "/catalog/")
		return
	}
	category, err := h.svc.Catalog.GetCategory(r.Context(), categoryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	pg, _ := h.page(w, r)
	h.render(w, r, http.StatusOK, "item_delete", struct {
		page
		Category *models.Category
		Item     *models.Item
	}{page: pg, Category: category, Item: item})
}

// PostDeleteItemHandler handles POST /catalog/{categoryID}/item/{itemID}/delete (guarded).
type PostDeleteItemHandler struct {
	base
}

// NewPostDeleteItemHandler returns a PostDeleteItemHandler backed by the given services.
func NewPostDeleteItemHandler(a *app.Application, svc *appsvcs.Services) *PostDeleteItemHandler {
	return &PostDeleteItemHandler{base: newBase(a, svc)}
}

// Execute deletes the item on behalf of its owner.
func (h *PostDeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
		return
	}
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

	err = h.svc.Catalog.DeleteItem(r.Context(), identity.UserID, itemID)
	switch {
	case errors.Is(err, catalogdomain.ErrNotItemOwner):
		h.flash(w, r, "You must own an item to delete it", "/catalog/")
	case err != nil:
		h.fail(w, r, err)
	default:
		h.flash(w, r, "Item successfully deleted", fmt.Sprintf("/catalog/%d/", categoryID))
	}
}
