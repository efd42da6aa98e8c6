package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/saschaorth/item-catalog/pkg/logger"
)

// LoginPath is where unauthenticated requests to guarded routes are sent.
const LoginPath = "/login"

// RequireLogin guards mutating routes. It loads the session identity and,
// when no username is present, redirects to the login page — never an error
// status, matching the soft-failure contract of the HTML surface.
//
// On success the identity is injected into the request context; handlers
// read it via auth.IdentityFromCtx.
func RequireLogin(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			identity := LoadIdentity(session)
			if !identity.LoggedIn() {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
