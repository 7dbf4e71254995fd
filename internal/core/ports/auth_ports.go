package ports

import (
	"context"

	"github.com/openvote/ballot/internal/core/domain"
)

// IdentityProvider delegates authentication to an external OAuth2 provider.
type IdentityProvider interface {
	// AuthCodeURL returns the provider consent page URL for the given
	// CSRF state value.
	AuthCodeURL(state string) string
	// Authenticate exchanges the authorization code and returns the
	// verified identity behind it.
	Authenticate(ctx context.Context, code string) (*domain.Identity, error)
}

// SessionStore holds server-side session state keyed by an opaque token.
// Handlers must never derive an identity from anything but this store.
type SessionStore interface {
	Establish(identity domain.Identity) string
	Current(token string) (domain.Identity, bool)
	Destroy(token string)
}
