package api

import (
	"encoding/json"
	"net/http"

	"eve-navigator/internal/engine"
)

type routeRequest struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Mode        engine.Mode `json:"mode"`
	Avoid       []string    `json:"avoid"`
}

type bordersRequest struct {
	Origin   string `json:"origin"`
	MaxJumps int    `json:"max_jumps"`
	Limit    int    `json:"limit"`
}

type nearestRequest struct {
	Origin    string `json:"origin"`
	Predicate string `json:"predicate"`
	Limit     int    `json:"limit"`
}

type loopRequest struct {
	Origin      string   `json:"origin"`
	TargetJumps int      `json:"target_jumps"`
	MinBorders  int      `json:"min_borders"`
	Avoid       []string `json:"avoid"`
}

type analyzeRequest struct {
	Route []string `json:"route"`
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &engine.InvalidQueryError{Reason: "invalid json: " + err.Error()}
	}
	return nil
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) error {
	var req routeRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	nav := s.navigator()
	origin, err := nav.ResolveSystem(req.Origin)
	if err != nil {
		return err
	}
	dest, err := nav.ResolveSystem(req.Destination)
	if err != nil {
		return err
	}
	avoid, err := nav.ResolveSystems(req.Avoid)
	if err != nil {
		return err
	}
	result, err := nav.Route(r.Context(), origin, dest, req.Mode, avoid)
	if err != nil {
		return err
	}
	writeJSON(w, result)
	return nil
}

func (s *Server) handleBorders(w http.ResponseWriter, r *http.Request) error {
	var req bordersRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	nav := s.navigator()
	origin, err := nav.ResolveSystem(req.Origin)
	if err != nil {
		return err
	}
	result, err := nav.Borders(r.Context(), origin, req.MaxJumps, req.Limit)
	if err != nil {
		return err
	}
	writeJSON(w, result)
	return nil
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) error {
	var req nearestRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	nav := s.navigator()
	origin, err := nav.ResolveSystem(req.Origin)
	if err != nil {
		return err
	}
	predicate, err := engine.ParsePredicate(req.Predicate)
	if err != nil {
		return err
	}
	result, err := nav.Nearest(r.Context(), origin, predicate, req.Limit)
	if err != nil {
		return err
	}
	writeJSON(w, result)
	return nil
}

func (s *Server) handleLoop(w http.ResponseWriter, r *http.Request) error {
	var req loopRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	nav := s.navigator()
	origin, err := nav.ResolveSystem(req.Origin)
	if err != nil {
		return err
	}
	avoid, err := nav.ResolveSystems(req.Avoid)
	if err != nil {
		return err
	}
	result, err := nav.Loop(r.Context(), origin, req.TargetJumps, req.MinBorders, avoid)
	if err != nil {
		return err
	}
	writeJSON(w, result)
	return nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) error {
	var req analyzeRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	nav := s.navigator()
	route, err := nav.ResolveSystems(req.Route)
	if err != nil {
		return err
	}
	result, err := nav.Analyze(r.Context(), route)
	if err != nil {
		return err
	}
	writeJSON(w, result)
	return nil
}

// handleSystems answers GET /api/systems?ref=Jita&ref=30000142 with the
// enriched projection for each requested system.
func (s *Server) handleSystems(w http.ResponseWriter, r *http.Request) {
	nav := s.navigator()
	if nav == nil {
		writeError(w, 503, "not_ready", "dataset not loaded yet")
		return
	}
	refs := r.URL.Query()["ref"]
	details, err := nav.Systems(refs)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"systems": details})
}
