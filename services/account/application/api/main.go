package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/saschaorth/item-catalog/pkg/app"
	"github.com/saschaorth/item-catalog/services/account/application/handlers"
	appsvcs "github.com/saschaorth/item-catalog/services/account/application/services"
)

// AccountRoutes registers the login, OAuth callback, disconnect, and logout
// endpoints on the provided chi router.
func AccountRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	login := handlers.NewGetLoginHandler(a, svcs)
	gconnect := handlers.NewPostGconnectHandler(a, svcs)
	gdisconnect := handlers.NewGetGdisconnectHandler(a, svcs)
	logout := handlers.NewGetLogoutHandler(a, svcs)

	r.Get("/login", login.Execute)
	r.Post("/gconnect", gconnect.Execute)
	r.Get("/gdisconnect", gdisconnect.Execute)
	r.Get("/logout", logout.Execute)
}
