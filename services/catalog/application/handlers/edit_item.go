package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	pkgvalidator "github.com/saschaorth/item-catalog/pkg/validator"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
	catalogdomain "github.com/saschaorth/item-catalog/services/catalog/domain"
	"github.com/saschaorth/item-catalog/services/catalog/domain/models"
)

// GetEditItemHandler handles GET /catalog/{categoryID}/item/{itemID}/edit (guarded).
type GetEditItemHandler struct {
	base
}

// NewGetEditItemHandler returns a GetEditItemHandler backed by the given services.
func NewGetEditItemHandler(a *app.Application, svc *appsvcs.Services) *GetEditItemHandler {
	return &GetEditItemHandler{base: newBase(a, svc)}
}

// Execute renders the prefilled edit form. Non-owners are turned away with a
// message before the form is shown.
func (h *GetEditItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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
		h.flash(w, r, "You must own an item to edit it", "/catalog/")
		return
	}
	category, err := h.svc.Catalog.GetCategory(r.Context(), categoryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categories, err := h.svc.Catalog.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	pg, _ := h.page(w, r)
	h.render(w, r, http.StatusOK, "item_edit", struct {
		page
		Category   *models.Category
		Item       *models.Item
		Categories []*models.Category
	}{page: pg, Category: category, Item: item, Categories: categories})
}

// PostEditItemHandler handles POST /catalog/{categoryID}/item/{itemID}/edit (guarded).
type PostEditItemHandler struct {
	base
}

// NewPostEditItemHandler returns a PostEditItemHandler backed by the given services.
func NewPostEditItemHandler(a *app.Application, svc *appsvcs.Services) *PostEditItemHandler {
	return &PostEditItemHandler{base: newBase(a, svc)}
}

// Execute applies non-empty form fields over the stored item. Validation and
// the ownership check run before anything is persisted, so a rejected edit
// leaves the record exactly as it was.
func (h *PostEditItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
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
	editPath := fmt.Sprintf("/catalog/%d/item/%d/edit", categoryID, itemID)

	item, err := h.svc.Catalog.GetItem(r.Context(), itemID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if item.UserID != identity.UserID {
		h.flash(w, r, "You must own an item to edit it", "/catalog/")
		return
	}

	fields := models.ItemFields{
		Name:        item.Name,
		Description: item.Description,
		CategoryID:  item.CategoryID,
		UserID:      item.UserID,
	}
	if name := strings.TrimSpace(r.PostFormValue("name")); name != "" {
		fields.Name = name
	}
	if description := strings.TrimSpace(r.PostFormValue("description")); description != "" {
		fields.Description = description
	}
	if category := r.PostFormValue("category"); category != "" {
		id, err := strconv.ParseInt(category, 10, 64)
		if err != nil {
			h.fail(w, r, catalogdomain.ErrCategoryNotFound)
			return
		}
		fields.CategoryID = id
	}
	if err := pkgvalidator.Validate(itemForm{Name: fields.Name, Description: fields.Description}); err != nil {
		h.log.DebugContext(r.Context(), "item form rejected",
			"fields", pkgvalidator.FormatValidationErrors(err))
		h.flash(w, r, "Name and description are required", editPath)
		return
	}

	err = h.svc.Catalog.UpdateItem(r.Context(), identity.UserID, itemID, fields)
	switch {
	case errors.Is(err, catalogdomain.ErrNotItemOwner):
		h.flash(w, r, "You must own an item to edit it", "/catalog/")
	case errors.Is(err, catalogdomain.ErrInvalidItemFields):
		h.flash(w, r, "Name and description are required", editPath)
	case err != nil:
		h.fail(w, r, err)
	default:
		h.flash(w, r,
			fmt.Sprintf("Item %s successfully updated", fields.Name),
			fmt.Sprintf("/catalog/%d/", fields.CategoryID))
	}
}
