package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cuesmith/internal/generation"
	"cuesmith/internal/logging"
	"cuesmith/internal/runlog"
)

// generateResponse adds the failure reason to a generation response.
type generateResponse struct {
	*generation.Response
	Error string `json:"error,omitempty"`
}

type runsResponse struct {
	Runs []runlog.Run `json:"runs"`
}

type healthResponse struct {
	Status  string                `json:"status"`
	RunLog  string                `json:"runLog,omitempty"`
	Runs    map[runlog.Status]int `json:"runs,omitempty"`
	Message string                `json:"message,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	}
	var req generation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := s.svc.Generate(r.Context(), req)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, generation.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, generation.ErrAlignmentRejected):
		s.writeJSON(w, http.StatusUnprocessableEntity, generateResponse{Response: resp, Error: err.Error()})
	default:
		payload := map[string]string{"error": err.Error()}
		if resp != nil && resp.RunID != "" {
			payload["runId"] = resp.RunID
		}
		logging.WithContext(r.Context(), s.logger).Error("generation failed", logging.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, payload)
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := runlog.ListFilter{
		WebinarID: strings.TrimSpace(query.Get("webinar")),
		Status:    runlog.Status(strings.TrimSpace(query.Get("status"))),
	}
	if value := strings.TrimSpace(query.Get("limit")); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}
	runs, err := s.svc.Runs(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, runsResponse{Runs: runs})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.Run(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleWebinarSubtitles(w http.ResponseWriter, r *http.Request) {
	record, err := s.svc.WebinarSubtitles(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "run log disabled"})
		return
	}
	if err := s.store.Ping(r.Context()); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", RunLog: s.store.Path(), Message: err.Error()})
		return
	}
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", RunLog: s.store.Path(), Message: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", RunLog: s.store.Path(), Runs: stats})
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generation.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, generation.ErrValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("run log query failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
