package httpserver

import (
	"net/http"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

type fieldSettingsRequest struct {
	Settings []domain.FieldSettingUpdate `json:"settings" validate:"required,min=1,dive"`
}

type fieldSettingsResponse struct {
	Settings []domain.ProfileFieldSetting `json:"settings"`
}

// ListFieldSettingsHandler returns every setting in display order.
func (s *Server) ListFieldSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := s.FieldSettings.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, fieldSettingsResponse{Settings: settings})
	}
}

// UpdateFieldSettingsHandler applies a bulk visibility/requirement update.
func (s *Server) UpdateFieldSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req fieldSettingsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		settings, err := s.FieldSettings.BulkUpdate(r.Context(), ActorFrom(r.Context()), req.Settings)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, fieldSettingsResponse{Settings: settings})
	}
}

// CompletionHandler evaluates a candidate's profile against the required fields.
func (s *Server) CompletionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		candidateID, err := pathID(r, "candidateID")
		if err != nil {
			writeError(w, r, err)
			return
		}
		res, err := s.Completion.Evaluate(r.Context(), candidateID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

type submitApplicationRequest struct {
	CandidateID string `json:"candidateId" validate:"required,max=100"`
}

// SubmitApplicationHandler gates an application on profile completion.
func (s *Server) SubmitApplicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := pathID(r, "jobID")
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req submitApplicationRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		app, err := s.Applications.Submit(r.Context(), jobID, req.CandidateID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, app)
	}
}
