package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

type criteriaRequest struct {
	JobID     string                `json:"jobId,omitempty"`
	Rules     []domain.CriteriaRule `json:"rules"`
	UpdatedAt *time.Time            `json:"updatedAt,omitempty"`
}

type validateResponse struct {
	Valid  bool                     `json:"valid"`
	Issues []domain.ValidationIssue `json:"issues"`
}

// GetCriteriaHandler returns the job's criteria; unconfigured jobs get an empty rule list.
func (s *Server) GetCriteriaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := pathID(r, "jobID")
		if err != nil {
			writeError(w, r, err)
			return
		}
		set, err := s.Criteria.Get(r.Context(), jobID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if set.Rules == nil {
			set.Rules = []domain.CriteriaRule{}
		}
		writeJSON(w, http.StatusOK, set)
	}
}

// PutCriteriaHandler replaces the job's criteria wholesale.
func (s *Server) PutCriteriaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := pathID(r, "jobID")
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req criteriaRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.JobID != "" && req.JobID != jobID {
			writeError(w, r, fmt.Errorf("%w: body jobId %q does not match path", domain.ErrInvalidArgument, req.JobID))
			return
		}
		set, err := s.Criteria.Save(r.Context(), ActorFrom(r.Context()), domain.CriteriaSet{JobID: jobID, Rules: req.Rules})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, set)
	}
}

// ValidateCriteriaHandler is a dry run: it reports issues without saving.
func (s *Server) ValidateCriteriaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req criteriaRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		issues := s.Criteria.Validate(req.Rules)
		writeJSON(w, http.StatusOK, validateResponse{Valid: len(issues) == 0, Issues: issues})
	}
}

// ImportCriteriaHandler accepts a JSON or YAML criteria document as the raw body.
func (s *Server) ImportCriteriaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := pathID(r, "jobID")
		if err != nil {
			writeError(w, r, err)
			return
		}
		limit := int64(s.Criteria.MaxImportBytes)
		if limit <= 0 {
			limit = maxJSONBody
		}
		// one extra byte lets the service report the overflow
		data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: read body: %v", domain.ErrInvalidArgument, err))
			return
		}
		if len(data) == 0 {
			writeError(w, r, fmt.Errorf("%w: empty criteria document", domain.ErrInvalidArgument))
			return
		}
		set, err := s.Criteria.Import(r.Context(), ActorFrom(r.Context()), jobID, data)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, set)
	}
}
