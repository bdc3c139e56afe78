package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/pkg/id"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/pkg/metrics"
	pkgtoken "github.com/hardy-ethan/UMichEmailVerifier/internal/pkg/token"
)

// Store is the pending-attempt store the service requires.
type Store interface {
	Put(a *domain.VerificationAttempt)
	Get(token string) (*domain.VerificationAttempt, error)
	Delete(token string)
	Len() int
}

// IdentityProvider builds consent URLs and redeems authorization codes.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.Identity, error)
}

// RoleGranter performs the chat-platform side of a successful verification.
type RoleGranter interface {
	ResolveGuild(ctx context.Context, guildID string) error
	GrantRole(ctx context.Context, guildID, userID, roleID string) error
}

type Service interface {
	// Begin registers a new attempt for userID and returns the consent URL.
	Begin(ctx context.Context, userID string) (authURL string, err error)
	// Complete finishes the attempt identified by state. On any failure the
	// attempt stays pending until it expires.
	Complete(ctx context.Context, state, code string) error
}

type ServiceDeps struct {
	Store    Store
	Provider IdentityProvider
	Guilds   RoleGranter
	Metrics  *metrics.Metrics
	Logger   *slog.Logger

	GuildID string
	RoleID  string
	// AllowedDomain, when set, must equal the identity's hosted domain.
	AllowedDomain string

	Now      func() time.Time
	NewToken func() (string, error)
}

type service struct {
	store    Store
	provider IdentityProvider
	guilds   RoleGranter
	metrics  *metrics.Metrics
	log      *slog.Logger

	guildID       string
	roleID        string
	allowedDomain string

	now      func() time.Time
	newToken func() (string, error)
}

func NewService(d ServiceDeps) Service {
	s := &service{
		store:         d.Store,
		provider:      d.Provider,
		guilds:        d.Guilds,
		metrics:       d.Metrics,
		log:           d.Logger,
		guildID:       d.GuildID,
		roleID:        d.RoleID,
		allowedDomain: strings.ToLower(d.AllowedDomain),
		now:           d.Now,
		newToken:      d.NewToken,
	}
	if s.metrics == nil {
		s.metrics = metrics.NewNop()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newToken == nil {
		s.newToken = pkgtoken.NewRequestToken
	}
	return s
}

func (s *service) Begin(ctx context.Context, userID string) (string, error) {
	tok, err := s.newToken()
	if err != nil {
		return "", err
	}
	createdAt := s.now()
	a := &domain.VerificationAttempt{
		ID:               id.New(createdAt),
		RequestToken:     tok,
		RequestingUserID: userID,
		CreatedAt:        createdAt,
	}
	s.store.Put(a)
	s.metrics.AttemptsStarted.Inc()
	s.metrics.AttemptsPending.Set(float64(s.store.Len()))
	s.log.InfoContext(ctx, "verification attempt started", "attempt_id", a.ID, "user_id", userID)
	return s.provider.AuthCodeURL(tok), nil
}

func (s *service) Complete(ctx context.Context, state, code string) error {
	a, err := s.store.Get(state)
	if err != nil {
		s.metrics.CallbacksTotal.WithLabelValues(metrics.OutcomeUnknownState).Inc()
		return fmt.Errorf("invalid verification attempt: %w", err)
	}
	log := s.log.With("attempt_id", a.ID, "user_id", a.RequestingUserID)

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		log.ErrorContext(ctx, "google oauth exchange failed", "err", err)
		s.metrics.CallbacksTotal.WithLabelValues(metrics.OutcomeExchangeError).Inc()
		return err
	}
	// The domain restriction is normally enforced by the Google project
	// itself; AllowedDomain is an optional second check.
	if s.allowedDomain != "" && strings.ToLower(identity.HostedDomain) != s.allowedDomain {
		log.WarnContext(ctx, "identity outside allowed domain", "hosted_domain", identity.HostedDomain)
		s.metrics.CallbacksTotal.WithLabelValues(metrics.OutcomeForbidden).Inc()
		return fmt.Errorf("hosted domain %q not allowed: %w", identity.HostedDomain, domain.ErrForbidden)
	}

	if err := s.guilds.ResolveGuild(ctx, s.guildID); err != nil {
		log.ErrorContext(ctx, "discord server lookup failed", "guild_id", s.guildID, "err", err)
		s.metrics.CallbacksTotal.WithLabelValues(metrics.OutcomeGuildMissing).Inc()
		return err
	}
	if err := s.guilds.GrantRole(ctx, s.guildID, a.RequestingUserID, s.roleID); err != nil {
		log.ErrorContext(ctx, "discord role grant failed", "role_id", s.roleID, "err", err)
		s.metrics.CallbacksTotal.WithLabelValues(metrics.OutcomeRoleError).Inc()
		return err
	}

	s.store.Delete(state)
	s.metrics.CallbacksTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	s.metrics.AttemptsPending.Set(float64(s.store.Len()))
	log.InfoContext(ctx, "verification completed", "role_id", s.roleID, "subject", identity.Subject)
	return nil
}
