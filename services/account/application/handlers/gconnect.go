package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	"github.com/saschaorth/item-catalog/pkg/errhttp"
	"github.com/saschaorth/item-catalog/pkg/httpx"
	appsvcs "github.com/saschaorth/item-catalog/services/account/application/services"
	accountdomain "github.com/saschaorth/item-catalog/services/account/domain"
)

// maxCodeLength bounds the authorization-code body read.
const maxCodeLength = 4096

// PostGconnectHandler handles POST /gconnect, the server side of the Google
// authorization-code flow.
type PostGconnectHandler struct {
	base
}

// NewPostGconnectHandler returns a PostGconnectHandler backed by the given services.
func NewPostGconnectHandler(a *app.Application, svc *appsvcs.Services) *PostGconnectHandler {
	return &PostGconnectHandler{base: newBase(a, svc)}
}

// Execute completes a login attempt:
//
//  1. The state query parameter must match the session's stored token.
//  2. The posted authorization code is exchanged and validated by the
//     connector.
//  3. If the session already holds credentials for the same subject, the
//     attempt short-circuits with "already connected" and changes nothing.
//  4. Otherwise the profile is fetched, a local user is resolved (created on
//     first login), and the full identity is bound to the session.
//
// Any failed check terminates the attempt with a status-coded JSON body and
// leaves the session without login fields.
func (h *PostGconnectHandler) Execute(w http.ResponseWriter, r *http.Request) {
	session, identity := h.session(r)

	state := r.URL.Query().Get("state")
	if state == "" || state != identity.StateToken {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid state parameter"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCodeLength))
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "Failed to read authorization code"})
		return
	}
	code := string(body)

	creds, err := h.svc.Google.Connect(r.Context(), code)
	if err != nil {
		h.log.WarnContext(r.Context(), "google connect failed", "error", err)
		httpx.JSON(w, errhttp.Status(err), ErrorResponse{Error: connectErrorMessage(err)})
		return
	}

	if identity.Connected(creds.SubjectID) {
		httpx.JSON(w, http.StatusOK, StatusResponse{Message: "Current user is already connected."})
		return
	}

	profile, err := h.svc.Google.FetchProfile(r.Context(), creds.AccessToken)
	if err != nil {
		h.log.ErrorContext(r.Context(), "profile fetch failed", "error", err)
		httpx.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch user info"})
		return
	}

	user, err := h.svc.Account.ResolveUser(r.Context(), profile.Email, profile.Email)
	if err != nil {
		h.log.ErrorContext(r.Context(), "user resolution failed", "error", err)
		httpx.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve user"})
		return
	}

	identity.Username = profile.Email
	identity.Email = profile.Email
	identity.UserID = user.ID
	identity.Provider = auth.ProviderGoogle
	identity.AccessToken = creds.AccessToken
	identity.GplusID = creds.SubjectID
	identity.Store(session)
	session.AddFlash(fmt.Sprintf("you are now logged in as %s", identity.Username))
	if err := session.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to save session", "error", err)
		httpx.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to save session"})
		return
	}

	httpx.JSON(w, http.StatusOK, StatusResponse{Message: "Successfully connected user."})
}

// connectErrorMessage maps connector failures to the messages the login page
// surfaces to the user.
func connectErrorMessage(err error) string {
	switch {
	case errors.Is(err, accountdomain.ErrCodeExchangeFailed):
		return "Failed to upgrade the authorization code"
	case errors.Is(err, accountdomain.ErrTokenUserMismatch):
		return "Token's user ID doesn't match given user ID."
	case errors.Is(err, accountdomain.ErrTokenClientMismatch):
		return "Token's client ID does not match app's."
	case errors.Is(err, accountdomain.ErrTokenIntrospection):
		return err.Error()
	default:
		return "Login failed"
	}
}
