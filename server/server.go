package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"team-planner/coverage"
	"team-planner/data"
	"team-planner/game"
	"team-planner/httpmw"
	"team-planner/parser"
	"team-planner/store"
	"team-planner/types"
)

const maxBodyBytes = 1 << 20

type Options struct {
	Dex *data.Dex
	// Store backs /api/teams and the session save/load commands. Nil
	// disables both.
	Store    *store.Store
	Coverage []coverage.Option
	Logger   *log.Logger
}

type Server struct {
	dex    *data.Dex
	store  *store.Store
	opts   []coverage.Option
	logger *log.Logger
}

// NewHandler wires every route behind the request ID, access log and
// recover middleware.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Dex == nil {
		return nil, errors.New("server: dex is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{dex: opts.Dex, store: opts.Store, opts: opts.Coverage, logger: opts.Logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "team-planner",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /ws", s.handleSession)

	mux.HandleFunc("POST /api/coverage", s.handleCoverage)
	mux.HandleFunc("GET /api/matchups", s.handleMatchups)
	mux.HandleFunc("GET /api/species", s.handleSpeciesList)
	mux.HandleFunc("GET /api/species/{name}", s.handleSpecies)
	mux.HandleFunc("GET /api/items", s.handleItems)
	mux.HandleFunc("GET /api/natures", s.handleNatures)

	mux.HandleFunc("GET /api/teams", s.handleTeamList)
	mux.HandleFunc("GET /api/teams/{name}", s.handleTeamGet)
	mux.HandleFunc("PUT /api/teams/{name}", s.handleTeamPut)
	mux.HandleFunc("DELETE /api/teams/{name}", s.handleTeamDelete)
	mux.HandleFunc("GET /api/teams/{name}/coverage", s.handleTeamCoverage)

	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// wantsHTML selects the rendered fragment over JSON with ?format=html.
func wantsHTML(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), "html")
}

func writeHTML(w http.ResponseWriter, fragment string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, fragment)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// body reads a size-limited request body, writing the error reply itself.
func (s *Server) body(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeErr(w, http.StatusRequestEntityTooLarge, err.Error())
		return nil, false
	case err != nil:
		writeErr(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return b, true
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	body, ok := s.body(w, r)
	if !ok {
		return
	}
	roster, err := game.Deserialize(body)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	res := coverage.Aggregate(roster, s.opts...)
	if wantsHTML(r) {
		writeHTML(w, parser.RenderCoverage(res))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMatchups(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("types"))
	if raw == "" {
		writeErr(w, http.StatusBadRequest, "types is required")
		return
	}
	ts, err := types.ParseList(strings.Split(raw, ","))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(ts) > 2 || (len(ts) == 2 && ts[0] == ts[1]) {
		writeErr(w, http.StatusBadRequest, "expected one or two distinct types")
		return
	}
	m := coverage.Matchups(ts)
	if wantsHTML(r) {
		writeHTML(w, parser.RenderMatchup(m))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleSpeciesList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"species": s.dex.SpeciesNames()})
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	p, err := s.dex.Species(name)
	if errors.Is(err, data.ErrNotFound) {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	ls, err := s.dex.Learnset(name)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	evo, err := s.dex.EvolutionChain(name)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pokemon":   p,
		"learnset":  ls,
		"matchup":   coverage.Matchups(p.Types),
		"evolution": evo,
	})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": s.dex.HeldItems()})
}

type natureInfo struct {
	Name game.Nature `json:"name"`
	Up   string      `json:"up,omitempty"`
	Down string      `json:"down,omitempty"`
}

func (s *Server) handleNatures(w http.ResponseWriter, r *http.Request) {
	out := make([]natureInfo, 0, 25)
	for _, n := range game.Natures() {
		up, down := n.Effect()
		out = append(out, natureInfo{Name: n, Up: up, Down: down})
	}
	writeJSON(w, http.StatusOK, map[string]any{"natures": out})
}
