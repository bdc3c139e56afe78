package domain

// Identity holds the claims asserted by the identity provider for the
// account that completed consent. It lives for a single callback request.
type Identity struct {
	// Subject is the provider's stable account ID.
	Subject      string
	HostedDomain string
}
