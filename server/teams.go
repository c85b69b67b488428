package server

import (
	"errors"
	"net/http"

	"team-planner/coverage"
	"team-planner/game"
	"team-planner/store"
)

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeErr(w, http.StatusServiceUnavailable, "team storage is not configured")
		return false
	}
	return true
}

func storeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrEmptyName), errors.Is(err, game.ErrMalformedImport):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleTeamList(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	teams, err := s.store.List(r.Context())
	if err != nil {
		writeErr(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

func (s *Server) handleTeamGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	payload, err := s.store.Load(r.Context(), r.PathValue("name"))
	if err != nil {
		writeErr(w, storeStatus(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleTeamPut(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	body, ok := s.body(w, r)
	if !ok {
		return
	}
	name := r.PathValue("name")
	if err := s.store.Save(r.Context(), name, body); err != nil {
		writeErr(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "name": name})
}

func (s *Server) handleTeamDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.Delete(r.Context(), r.PathValue("name")); err != nil {
		writeErr(w, storeStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTeamCoverage(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	roster, err := s.store.LoadRoster(r.Context(), r.PathValue("name"))
	if err != nil {
		writeErr(w, storeStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, coverage.Aggregate(roster, s.opts...))
}
