package main

import (
	"context"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	validationshandler "github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/handler"
	platformlogging "github.com/zenGate-Global/palmyra-idcheck/platform/go/logging"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/metrics"
	platformmiddleware "github.com/zenGate-Global/palmyra-idcheck/platform/go/middleware"
)

type routerConfig struct {
	Logger         *zap.Logger
	Handler        *validationshandler.Handler
	Contract       *openapi3.T
	Metrics        *metrics.Metrics // nil disables /metrics
	Ready          func(ctx context.Context) error
	RequestTimeout time.Duration
}

func newRouter(cfg routerConfig) http.Handler {
	rootRouter := chi.NewRouter()

	rootRouter.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.Timeout(cfg.RequestTimeout),
		platformmiddleware.DefaultCORS(),
	)

	rootRouter.Use(platformlogging.RequestLogger(cfg.Logger, "/healthz", "/readyz", "/metrics"))

	rootRouter.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil {
			if err := cfg.Ready(r.Context()); err != nil {
				platformlogging.FromRequest(r, cfg.Logger).Warn("readiness check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	if cfg.Metrics != nil {
		rootRouter.Handle("/metrics", cfg.Metrics.Handler())
	}

	// ---- Swagger UI + OpenAPI JSON (public) ----
	registerDocsRoutes(rootRouter, cfg.Logger, map[string]*openapi3.T{"validations": cfg.Contract})

	apiRouter := chi.NewRouter()
	apiRouter.Use(platformmiddleware.RequestTrace)
	apiRouter.Group(func(r chi.Router) {
		r.Use(platformmiddleware.ContractValidator(cfg.Contract))
		cfg.Handler.Routes(r)
	})

	rootRouter.Mount("/api/v1", apiRouter)

	return rootRouter
}
