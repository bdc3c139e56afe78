package http

import (
	"log/slog"

	"github.com/hardy-ethan/UMichEmailVerifier/internal/application/verification"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps holds everything the router needs, built once in main.
type Deps struct {
	Verification verification.Service
	// Gatherer backs /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
	// Logger receives one line per request; nil means slog.Default().
	Logger *slog.Logger
}
