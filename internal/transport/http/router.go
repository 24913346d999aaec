// Package http assembles the HTTP surface: public intake routes, the
// admin-gated moderation routes and operational endpoints.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminhandler "registrar/internal/admin/handler"
	moderationhandler "registrar/internal/moderation/handler"
	notifyhandler "registrar/internal/notify/handler"
	"registrar/internal/platform/health"
	"registrar/internal/platform/metrics"
	"registrar/internal/platform/middleware"
	registrationhandler "registrar/internal/registration/handler"
)

const requestTimeout = 30 * time.Second

// Handlers collects every feature handler mounted on the router.
type Handlers struct {
	Registration *registrationhandler.Handler
	Moderation   *moderationhandler.Handler
	Notify       *notifyhandler.Handler
	Admin        *adminhandler.Handler
	Health       *health.Handler
}

// NewRouter builds the full route tree. Moderation routes sit behind the
// admin session gate; everything else is public.
func NewRouter(h Handlers, sessions middleware.SessionValidator, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.LatencyMiddleware(m))
	r.Use(middleware.Timeout(requestTimeout))

	h.Health.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		h.Registration.Register(r)
		h.Notify.Register(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		h.Admin.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(sessions, logger))
			h.Moderation.Register(r)
		})
	})

	return r
}
