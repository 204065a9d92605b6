package httpserver

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/export"
	"github.com/fairyhunter13/shortlist-engine/internal/usecase"
)

// GenerateShortlistHandler re-ranks a job. Administrators see failures too.
func (s *Server) GenerateShortlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := pathID(r, "jobID")
		if err != nil {
			writeError(w, r, err)
			return
		}
		ranking, err := s.Shortlist.Generate(r.Context(), jobID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if n := len(ranking.Failures); n > 0 {
			w.Header().Set("X-Shortlist-Failures", strconv.Itoa(n))
		}
		writeJSON(w, http.StatusOK, ranking)
	}
}

// GetShortlistHandler serves the latest ranking without failures.
func (s *Server) GetShortlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := pathID(r, "jobID")
		if err != nil {
			writeError(w, r, err)
			return
		}
		ranking, err := s.Shortlist.Get(r.Context(), jobID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, usecase.EntriesOnly(ranking))
	}
}

// ExportShortlistHandler downloads the ranking as xlsx (default) or csv.
func (s *Server) ExportShortlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := pathID(r, "jobID")
		if err != nil {
			writeError(w, r, err)
			return
		}
		f, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		// buffered so a failure still gets the JSON envelope
		var buf bytes.Buffer
		if err := s.Shortlist.Export(r.Context(), jobID, f, &buf); err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", f.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename(jobID)+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
