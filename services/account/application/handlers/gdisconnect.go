package handlers

import (
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/httpx"
	appsvcs "github.com/saschaorth/item-catalog/services/account/application/services"
)

// GetGdisconnectHandler handles GET /gdisconnect.
type GetGdisconnectHandler struct {
	base
}

// NewGetGdisconnectHandler returns a GetGdisconnectHandler backed by the given services.
func NewGetGdisconnectHandler(a *app.Application, svc *appsvcs.Services) *GetGdisconnectHandler {
	return &GetGdisconnectHandler{base: newBase(a, svc)}
}

// Execute revokes the session's access token at the provider. Session
// identity is left in place; clearing it is logout's job.
func (h *GetGdisconnectHandler) Execute(w http.ResponseWriter, r *http.Request) {
	_, identity := h.session(r)

	if identity.AccessToken == "" {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Current user not connected."})
		return
	}
	if err := h.svc.Google.Revoke(r.Context(), identity.AccessToken); err != nil {
		h.log.WarnContext(r.Context(), "token revocation failed", "error", err)
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "Failed to revoke token for given user."})
		return
	}
	httpx.JSON(w, http.StatusOK, StatusResponse{Message: "Successfully disconnected."})
}
