package verification

import (
	"context"
	"log/slog"
	"time"

	"github.com/hardy-ethan/UMichEmailVerifier/internal/pkg/metrics"
)

// SweepStore is the part of the attempt store the sweeper touches.
type SweepStore interface {
	// Sweep removes attempts older than maxAge and returns how many it removed.
	Sweep(now time.Time, maxAge time.Duration) int
	Len() int
}

// Sweeper periodically drops attempts older than maxAge so abandoned
// verifications neither accumulate nor complete late.
type Sweeper struct {
	store    SweepStore
	interval time.Duration
	maxAge   time.Duration
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

func NewSweeper(store SweepStore, interval, maxAge time.Duration, m *metrics.Metrics, logger *slog.Logger) *Sweeper {
	if m == nil {
		m = metrics.NewNop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		maxAge:   maxAge,
		metrics:  m,
		log:      logger,
		now:      time.Now,
	}
}

// Run sweeps every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce performs a single pass.
func (s *Sweeper) SweepOnce() {
	removed := s.store.Sweep(s.now(), s.maxAge)
	pending := s.store.Len()
	if removed > 0 {
		s.metrics.AttemptsExpired.Add(float64(removed))
		s.log.Debug("expired verification attempts removed", "removed", removed, "pending", pending)
	}
	s.metrics.AttemptsPending.Set(float64(pending))
}
