package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrExchange      = errors.New("identity provider exchange failed")
	ErrGuildNotFound = errors.New("guild not found")
	ErrRoleGrant     = errors.New("role grant failed")
)
