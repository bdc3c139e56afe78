package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// Scopes requested on the consent screen. openid yields an ID token, email
// adds the address and hosted-domain claims to it.
var Scopes = []string{"openid", "email"}

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Provider builds Google authorization URLs and exchanges authorization codes
// for a verified identity. It holds no per-user credentials; the oauth2 token
// from an exchange never outlives the call.
type Provider struct {
	conf         *oauth2.Config
	hostedDomain string
	validate     validateFunc
}

// NewProvider configures the OAuth client. hostedDomain, when non-empty, is
// sent as the hd hint so the account chooser only offers that domain.
func NewProvider(clientID, clientSecret, redirectURL, hostedDomain string) *Provider {
	return &Provider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     googleoauth.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
		},
		hostedDomain: hostedDomain,
		validate:     idtoken.Validate,
	}
}

// AuthCodeURL returns the consent URL carrying state as the opaque correlator.
func (p *Provider) AuthCodeURL(state string) string {
	opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline}
	if p.hostedDomain != "" {
		opts = append(opts, oauth2.SetAuthURLParam("hd", p.hostedDomain))
	}
	return p.conf.AuthCodeURL(state, opts...)
}

// Exchange trades code for tokens and returns the identity asserted by the
// accompanying ID token. Failures wrap domain.ErrExchange.
func (p *Provider) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	if code == "" {
		return nil, fmt.Errorf("empty authorization code: %w", domain.ErrExchange)
	}
	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange auth code: %w", errors.Join(domain.ErrExchange, err))
	}
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return nil, fmt.Errorf("token response has no id_token: %w", domain.ErrExchange)
	}
	payload, err := p.validate(ctx, raw, p.conf.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google id token: %w", errors.Join(domain.ErrExchange, err))
	}
	hd, _ := payload.Claims["hd"].(string)
	return &domain.Identity{Subject: payload.Subject, HostedDomain: hd}, nil
}
