package handlers

import (
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	appsvcs "github.com/saschaorth/item-catalog/services/account/application/services"
)

// GetLogoutHandler handles GET /logout.
type GetLogoutHandler struct {
	base
}

// NewGetLogoutHandler returns a GetLogoutHandler backed by the given services.
func NewGetLogoutHandler(a *app.Application, svc *appsvcs.Services) *GetLogoutHandler {
	return &GetLogoutHandler{base: newBase(a, svc)}
}

// Execute ends the session. Google credentials are revoked best-effort, then
// the whole identity is discarded in one step. Logging out an anonymous
// session is a no-op redirect.
func (h *GetLogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, identity := h.session(r)

	if identity.Provider == auth.ProviderGoogle && identity.AccessToken != "" {
		if err := h.svc.Google.Revoke(r.Context(), identity.AccessToken); err != nil {
			// Revocation failure must not trap the user in a logged-in session.
			h.log.WarnContext(r.Context(), "token revocation failed during logout", "error", err)
		}
	}

	if identity.LoggedIn() {
		auth.ClearIdentity(session)
		session.AddFlash("You have successfully been logged out.")
		if err := session.Save(r, w); err != nil {
			h.log.ErrorContext(r.Context(), "failed to save session", "error", err)
		}
	}

	http.Redirect(w, r, "/catalog/", http.StatusFound)
}
