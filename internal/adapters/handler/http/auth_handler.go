package http

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/openvote/ballot/internal/core/ports"
)

const stateCookieName = "oauth_state"

type AuthHandler struct {
	provider ports.IdentityProvider
	store    ports.SessionStore
}

func NewAuthHandler(provider ports.IdentityProvider, store ports.SessionStore) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		store:    store,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   10 * 60,
	})
	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
}

// Callback finishes the authorization-code flow. Any failure, including a
// denied consent screen, lands back on the landing page.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	expireCookie(w, stateCookieName)

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	identity, err := h.provider.Authenticate(r.Context(), code)
	if err != nil {
		log.Printf("google authentication failed: %v", err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	token := h.store.Establish(*identity)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   24 * 60 * 60,
	})

	http.Redirect(w, r, "/vote", http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		h.store.Destroy(cookie.Value)
	}
	expireCookie(w, sessionCookieName)
	http.Redirect(w, r, "/", http.StatusFound)
}

func expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})
}
