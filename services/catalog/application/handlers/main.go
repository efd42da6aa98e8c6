// Package handlers contains the HTTP handlers for the catalog pages and
// JSON endpoints. Business-rule rejections (validation, ownership) are soft
// failures: a flash message plus redirect, never an error status. Missing
// records render the not-found page; JSON endpoints return status-coded
// errors instead.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/pkg/auth"
	"github.com/saschaorth/item-catalog/pkg/errhttp"
	"github.com/saschaorth/item-catalog/pkg/logger"
	"github.com/saschaorth/item-catalog/pkg/render"
	appsvcs "github.com/saschaorth/item-catalog/services/catalog/application/services"
)

// page carries the fields every view needs. Embedded by the per-view data structs.
type page struct {
	LoggedIn bool
	Flashes  []any
}

// base bundles the dependencies shared by all catalog handlers.
type base struct {
	svc      *appsvcs.Services
	store    sessions.Store
	renderer render.Renderer
	log      logger.Logger
}

func newBase(a *app.Application, svc *appsvcs.Services) base {
	return base{svc: svc, store: a.SessionStore, renderer: a.Renderer, log: a.Logger}
}

// page loads the browser session, pops pending flash messages, and returns
// the common view fields plus the session identity. Popping flashes mutates
// the session, so it is saved here before the response body is written.
func (b base) page(w http.ResponseWriter, r *http.Request) (page, auth.Identity) {
	session, err := b.store.Get(r, auth.SessionName)
	if err != nil {
		b.log.WarnContext(r.Context(), "invalid session cookie", "error", err)
		return page{}, auth.Identity{}
	}
	identity := auth.LoadIdentity(session)
	flashes := session.Flashes()
	if err := session.Save(r, w); err != nil {
		b.log.ErrorContext(r.Context(), "failed to save session", "error", err)
	}
	return page{LoggedIn: identity.LoggedIn(), Flashes: flashes}, identity
}

// flash records a message in the session and redirects. This is the soft
// failure and the success path for all form handlers.
func (b base) flash(w http.ResponseWriter, r *http.Request, message, location string) {
	session, err := b.store.Get(r, auth.SessionName)
	if err == nil {
		session.AddFlash(message)
		if err := session.Save(r, w); err != nil {
			b.log.ErrorContext(r.Context(), "failed to save session", "error", err)
		}
	}
	http.Redirect(w, r, location, http.StatusFound)
}

// fail renders the not-found page for missing records and a bare status for
// everything else.
func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errhttp.Status(err)
	if status == http.StatusNotFound {
		pg, _ := b.page(w, r)
		data := struct {
			page
			Message string
		}{page: pg, Message: "The requested record does not exist."}
		b.render(w, r, http.StatusNotFound, "not_found", data)
		return
	}
	b.log.ErrorContext(r.Context(), "request failed", "error", err)
	http.Error(w, http.StatusText(status), status)
}

// render executes the view. The renderer buffers before writing, so on
// failure no partial body has gone out and a plain 500 is still possible.
func (b base) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := b.renderer.Render(w, status, name, data); err != nil {
		b.log.ErrorContext(r.Context(), "failed to render view", "view", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// urlID parses a numeric chi URL parameter.
func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
