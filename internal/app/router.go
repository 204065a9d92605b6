// Package app assembles the HTTP router and readiness checks.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/httpserver"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func rateLimit(perMin int) func(http.Handler) http.Handler {
	if perMin <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMin, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(httpserver.RateLimited),
	)
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(30 * time.Second))
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Shortlist-Failures", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// candidate and recruiter views
	r.Group(func(pr chi.Router) {
		pr.Use(rateLimit(cfg.RateLimitPerMin))
		pr.Get("/v1/field-settings", srv.ListFieldSettingsHandler())
		pr.Get("/v1/candidates/{candidateID}/completion", srv.CompletionHandler())
		pr.Post("/v1/jobs/{jobID}/applications", srv.SubmitApplicationHandler())
		pr.Get("/v1/jobs/{jobID}/criteria", srv.GetCriteriaHandler())
		pr.Get("/v1/jobs/{jobID}/shortlist", srv.GetShortlistHandler())
	})

	// administrator surface
	r.Group(func(ar chi.Router) {
		ar.Use(rateLimit(cfg.RateLimitPerMin))
		ar.Use(httpserver.AdminGuard(cfg.AdminUsername, cfg.AdminPasswordHash))
		ar.Put("/v1/field-settings", srv.UpdateFieldSettingsHandler())
		ar.Put("/v1/jobs/{jobID}/criteria", srv.PutCriteriaHandler())
		ar.Post("/v1/criteria/validate", srv.ValidateCriteriaHandler())
		ar.Post("/v1/jobs/{jobID}/criteria/import", srv.ImportCriteriaHandler())
		ar.Post("/v1/jobs/{jobID}/shortlist", srv.GenerateShortlistHandler())
		ar.Get("/v1/jobs/{jobID}/shortlist/export", srv.ExportShortlistHandler())
	})

	r.Get("/healthz", srv.HealthzHandler())
	r.Get("/readyz", srv.ReadyzHandler())
	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(httpserver.SecurityHeaders(r), "http.server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string { return r.Method + " " + r.URL.Path }),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/metrics" && r.URL.Path != "/healthz"
		}),
	)
}
