package handlers

import (
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	appsvcs "github.com/saschaorth/item-catalog/services/account/application/services"
)

// GetLoginHandler handles GET /login.
type GetLoginHandler struct {
	base
}

// NewGetLoginHandler returns a GetLoginHandler backed by the given services.
func NewGetLoginHandler(a *app.Application, svc *appsvcs.Services) *GetLoginHandler {
	return &GetLoginHandler{base: newBase(a, svc)}
}

// Execute generates a fresh anti-forgery state token, binds it to the
// session, and renders the login page with the token and client id embedded.
func (h *GetLoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, identity := h.session(r)

	token, err := auth.NewStateToken()
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to generate state token", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	identity.StateToken = token
	identity.Store(session)
	flashes := session.Flashes()
	if err := session.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to save session", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := struct {
		LoggedIn   bool
		Flashes    []any
		StateToken string
		ClientID   string
	}{
		LoggedIn:   identity.LoggedIn(),
		Flashes:    flashes,
		StateToken: token,
		ClientID:   h.svc.Google.ClientID(),
	}
	if err := h.renderer.Render(w, http.StatusOK, "login", data); err != nil {
		h.log.ErrorContext(r.Context(), "failed to render login", "error", err)
	}
}
