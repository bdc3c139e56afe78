package domain

import "time"

// VerificationAttempt is one outstanding request to prove ownership of an
// institutional email. It is keyed by RequestToken, which also travels
// through the identity provider as the OAuth state parameter.
type VerificationAttempt struct {
	ID               string // ULID, safe to log in place of the token
	RequestToken     string
	RequestingUserID string
	CreatedAt        time.Time
}

// Age reports how long the attempt has been pending as of now.
func (a *VerificationAttempt) Age(now time.Time) time.Duration {
	return now.Sub(a.CreatedAt)
}
