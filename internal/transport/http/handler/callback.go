package handler

import (
	"errors"
	"net/http"

	"github.com/hardy-ethan/UMichEmailVerifier/internal/application/verification"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
)

// User-facing callback messages.
const (
	MsgInvalidAttempt = "Invalid verification attempt"
	MsgExchangeFailed = "Error during Google authentication"
	MsgWrongDomain    = "Your Google account is not part of the required organization"
	MsgGuildMissing   = "Error finding Discord server"
	MsgRoleFailed     = "Error assigning role. Please contact a staff member."
)

// CallbackHandler receives the identity provider's redirect after consent.
type CallbackHandler struct {
	svc         verification.Service
	institution string
}

func NewCallbackHandler(svc verification.Service, institution string) *CallbackHandler {
	return &CallbackHandler{svc: svc, institution: institution}
}

// Google handles GET /auth/google/callback?code=...&state=...
func (h *CallbackHandler) Google(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	err := h.svc.Complete(r.Context(), q.Get("state"), q.Get("code"))
	switch {
	case err == nil:
		writeSuccessPage(w, h.institution)
	case errors.Is(err, domain.ErrNotFound):
		writeText(w, http.StatusBadRequest, MsgInvalidAttempt)
	case errors.Is(err, domain.ErrForbidden):
		writeText(w, http.StatusForbidden, MsgWrongDomain)
	case errors.Is(err, domain.ErrGuildNotFound):
		writeText(w, http.StatusInternalServerError, MsgGuildMissing)
	case errors.Is(err, domain.ErrRoleGrant):
		writeText(w, http.StatusInternalServerError, MsgRoleFailed)
	default:
		writeText(w, http.StatusInternalServerError, MsgExchangeFailed)
	}
}
