package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/config"
	"github.com/fairyhunter13/shortlist-engine/internal/usecase"
)

// ReadinessCheck is one dependency probed by /readyz.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server aggregates handler dependencies.
type Server struct {
	Cfg           config.Config
	FieldSettings usecase.FieldSettingsService
	Completion    usecase.CompletionService
	Applications  usecase.ApplicationService
	Criteria      usecase.CriteriaService
	Shortlist     usecase.ShortlistService
	Checks        []ReadinessCheck
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(
	cfg config.Config,
	fs usecase.FieldSettingsService,
	completion usecase.CompletionService,
	apps usecase.ApplicationService,
	criteria usecase.CriteriaService,
	shortlist usecase.ShortlistService,
	checks ...ReadinessCheck,
) *Server {
	return &Server{
		Cfg:           cfg,
		FieldSettings: fs,
		Completion:    completion,
		Applications:  apps,
		Criteria:      criteria,
		Shortlist:     shortlist,
		Checks:        checks,
	}
}

// HealthzHandler reports liveness only.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
}

// ReadyzHandler probes every configured dependency with a shared 2s budget.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, len(s.Checks))
		ok := true
		for _, c := range s.Checks {
			if c.Check == nil {
				continue
			}
			if err := c.Check(ctx); err != nil {
				ok = false
				checks = append(checks, check{Name: c.Name, Details: err.Error()})
				continue
			}
			checks = append(checks, check{Name: c.Name, OK: true})
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
