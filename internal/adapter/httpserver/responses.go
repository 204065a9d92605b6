// Package httpserver contains HTTP handlers and middleware.
//
// It exposes the field settings, completion, application, criteria and
// shortlist endpoints. Handlers decode and validate requests, call the usecase
// services, and translate domain errors into a JSON error envelope.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps an error onto its HTTP status and envelope code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrProfileIncomplete):
		return http.StatusUnprocessableEntity, "PROFILE_INCOMPLETE"
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusUnprocessableEntity, "CONFIGURATION"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED"
	}
	return http.StatusInternalServerError, "INTERNAL"
}

// errorDetails pulls the structured payload out of typed domain errors.
func errorDetails(err error) interface{} {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return map[string]any{"issues": ve.Issues}
	}
	var ie *domain.IncompleteProfileError
	if errors.As(err, &ie) {
		return map[string]any{"eligibility": ie.Result}
	}
	var ce *domain.ConfigurationError
	if errors.As(err, &ce) {
		return map[string]any{"ruleId": ce.RuleID, "fieldKey": ce.FieldKey, "ruleType": ce.RuleType, "reason": ce.Reason}
	}
	return nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: msg, Details: errorDetails(err)}})
}

// RateLimited answers throttled requests with the standard error envelope.
func RateLimited(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, domain.ErrRateLimited)
}
