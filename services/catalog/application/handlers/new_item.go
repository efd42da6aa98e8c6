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

const newItemPath = "/catalog/item/new"

// itemForm is the add/edit item form payload.
type itemForm struct {
	Name        string `form:"name" validate:"required,max=250"`
	Description string `form:"description" validate:"required,max=250"`
}

// GetNewItemHandler handles GET /catalog/item/new (guarded).
type GetNewItemHandler struct {
	base
}

// NewGetNewItemHandler returns a GetNewItemHandler backed by the given services.
func NewGetNewItemHandler(a *app.Application, svc *appsvcs.Services) *GetNewItemHandler {
	return &GetNewItemHandler{base: newBase(a, svc)}
}

// Execute renders the empty add-item form.
func (h *GetNewItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Catalog.Categories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	pg, _ := h.page(w, r)
	h.render(w, r, http.StatusOK, "item_new", struct {
		page
		Name        string
		Description string
		Categories  []*models.Category
	}{page: pg, Categories: categories})
}

// PostNewItemHandler handles POST /catalog/item/new (guarded).
type PostNewItemHandler struct {
	base
}

// NewPostNewItemHandler returns a PostNewItemHandler backed by the given services.
func NewPostNewItemHandler(a *app.Application, svc *appsvcs.Services) *PostNewItemHandler {
	return &PostNewItemHandler{base: newBase(a, svc)}
}

// Execute creates an item owned by the session user. An empty name or
// description redirects back to the form without creating anything.
func (h *PostNewItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
		return
	}

	form := itemForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
	if err := pkgvalidator.Validate(form); err != nil {
		h.log.DebugContext(r.Context(), "item form rejected",
			"fields", pkgvalidator.FormatValidationErrors(err))
		h.flash(w, r, "Name and description are required", newItemPath)
		return
	}
	categoryID, err := strconv.ParseInt(r.PostFormValue("category"), 10, 64)
	if err != nil {
		h.fail(w, r, catalogdomain.ErrCategoryNotFound)
		return
	}

	item, err := h.svc.Catalog.CreateItem(r.Context(), models.ItemFields{
		Name:        form.Name,
		Description: form.Description,
		CategoryID:  categoryID,
		UserID:      identity.UserID,
	})
	if errors.Is(err, catalogdomain.ErrInvalidItemFields) {
		h.flash(w, r, "Name and description are required", newItemPath)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.flash(w, r,
		fmt.Sprintf("New item %s successfully created", item.Name),
		fmt.Sprintf("/catalog/%d/", item.CategoryID))
}
