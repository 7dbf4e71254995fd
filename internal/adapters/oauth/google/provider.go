package google

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/openvote/ballot/internal/core/domain"
	"github.com/openvote/ballot/internal/core/ports"
)

// Provider runs the redirect-based authorization-code flow against Google
// and validates the resulting ID token.
type Provider struct {
	config *oauth2.Config
}

func NewProvider(clientID, clientSecret, callbackURL string) *Provider {
	return &Provider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     oauthgoogle.Endpoint,
		},
	}
}

func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *Provider) Authenticate(ctx context.Context, code string) (*domain.Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("no id_token in token response")
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, p.config.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid id token: %w", err)
	}

	email, ok := payload.Claims["email"].(string)
	if !ok {
		return nil, errors.New("email not found in claims")
	}
	name, ok := payload.Claims["name"].(string)
	if !ok {
		return nil, errors.New("name not found in claims")
	}

	return &domain.Identity{
		GoogleID: payload.Subject,
		Email:    email,
		Name:     name,
	}, nil
}

var _ ports.IdentityProvider = (*Provider)(nil)
