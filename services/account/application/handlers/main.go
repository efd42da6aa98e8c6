// Package handlers contains the HTTP handlers for login, the Google
// authorization-code callback, disconnect, and logout. The connect and
// disconnect endpoints answer with status-coded JSON; login and logout are
// part of the HTML surface.
package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	"github.com/saschaorth/item-catalog/pkg/logger"
	"github.com/saschaorth/item-catalog/pkg/render"
	appsvcs "github.com/saschaorth/item-catalog/services/account/application/services"
)

// StatusResponse is the body of successful connect/disconnect responses.
type StatusResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// base bundles the dependencies shared by all account handlers.
type base struct {
	svc      *appsvcs.Services
	store    sessions.Store
	renderer render.Renderer
	log      logger.Logger
}

func newBase(a *app.Application, svc *appsvcs.Services) base {
	return base{svc: svc, store: a.SessionStore, renderer: a.Renderer, log: a.Logger}
}

// session loads the browser session, tolerating a stale or tampered cookie
// by starting a fresh one.
func (b base) session(r *http.Request) (*sessions.Session, auth.Identity) {
	session, err := b.store.Get(r, auth.SessionName)
	if err != nil {
		b.log.WarnContext(r.Context(), "invalid session cookie", "error", err)
	}
	return session, auth.LoadIdentity(session)
}
