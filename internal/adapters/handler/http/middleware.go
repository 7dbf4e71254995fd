package http

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/openvote/ballot/internal/core/domain"
	"github.com/openvote/ballot/internal/core/ports"
)

type contextKey string

// IdentityKey carries the authenticated identity resolved by the session
// middleware. Handlers read identity from here and nowhere else.
const IdentityKey contextKey = "identity"

const sessionCookieName = "ballot_session"

func sessionIdentity(r *http.Request, store ports.SessionStore) (domain.Identity, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return domain.Identity{}, false
	}
	return store.Current(cookie.Value)
}

// RequireSession gates API routes: no session means a 401, never a redirect.
func RequireSession(store ports.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := sessionIdentity(r, store)
			if !ok {
				respondError(w, http.StatusUnauthorized, "Not logged in")
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSessionPage gates page routes: no session means a redirect to the
// landing page.
func RequireSessionPage(store ports.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := sessionIdentity(r, store)
			if !ok {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminKey is a static shared-secret gate, independent of any
// session. The key arrives via the x-admin-key header or the key query
// parameter.
func RequireAdminKey(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get("x-admin-key")
			if supplied == "" {
				supplied = r.URL.Query().Get("key")
			}
			if adminKey == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(adminKey)) != 1 {
				respondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
