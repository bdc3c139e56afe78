package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/config"
	"github.com/hardy-ethan/UMichEmailVerifier/internal/transport/http/handler"
	appmiddleware "github.com/hardy-ethan/UMichEmailVerifier/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// CallbackPath is where Google redirects after consent; GOOGLE_REDIRECT_URI must point here.
const CallbackPath = "/auth/google/callback"

// NewRouter builds and returns the application router. ctx bounds background
// work owned by middleware.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	// 5 requests/second, burst of 10; the callback is public and each hit may call Google.
	callbackRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	callbackH := handler.NewCallbackHandler(deps.Verification, cfg.InstitutionName)

	r.Get("/health-check/{action}", healthH.Ping)
	r.With(callbackRL.Limit).Get(CallbackPath, callbackH.Google)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
