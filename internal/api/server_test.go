package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eve-navigator/internal/config"
	"eve-navigator/internal/dataset"
	"eve-navigator/internal/engine"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	artifact := &dataset.Artifact{
		SchemaVersion: dataset.SchemaVersion,
		GeneratedAt:   "2026-08-20T00:00:00Z",
		Regions:       []dataset.Region{{ID: 1, Name: "Core"}},
		Constellations: []dataset.Constellation{
			{ID: 1, RegionID: 1, Name: "Inner"},
		},
		Systems: []dataset.System{
			{ID: 1, Name: "Alpha", RegionID: 1, ConstellationID: 1, Security: 0.9},
			{ID: 2, Name: "Beta", RegionID: 1, ConstellationID: 1, Security: 0.6},
			{ID: 3, Name: "Gamma", RegionID: 1, ConstellationID: 1, Security: 0.3},
			{ID: 4, Name: "Delta", RegionID: 1, ConstellationID: 1, Security: -0.2},
		},
		Links: []dataset.Link{{A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 4}},
	}
	data, err := artifact.Build()
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	s := NewServer(config.Default())
	s.SetDataset(data)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestStatus(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s.Handler(), "GET", "/api/status", nil)
	if w.Code != 200 {
		t.Fatalf("status code = %d", w.Code)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["ready"] != true {
		t.Fatalf("ready = %v", got["ready"])
	}
	if got["systems"].(float64) != 4 || got["links"].(float64) != 3 {
		t.Fatalf("counts = %v / %v", got["systems"], got["links"])
	}
}

func TestRouteEndpoint(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s.Handler(), "POST", "/api/route", routeRequest{
		Origin: "Alpha", Destination: "delta",
	})
	if w.Code != 200 {
		t.Fatalf("status code = %d, body %s", w.Code, w.Body.String())
	}
	var got engine.RouteResult
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Jumps != 3 || got.Origin.ID != 1 || got.Destination.ID != 4 {
		t.Fatalf("route = %+v", got)
	}
	if got.Mode != engine.ModeShortest {
		t.Fatalf("mode = %v, want shortest by default", got.Mode)
	}
}

func TestErrorMapping(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	cases := []struct {
		name     string
		path     string
		body     interface{}
		wantCode int
		wantKind string
	}{
		{"unknown system", "/api/route", routeRequest{Origin: "Nowhere", Destination: "Alpha"}, 404, "unknown_system"},
		{"avoid endpoint", "/api/route", routeRequest{Origin: "Alpha", Destination: "Delta", Avoid: []string{"Alpha"}}, 400, "invalid_query"},
		{"bad predicate", "/api/nearest", nearestRequest{Origin: "Alpha", Predicate: "wormhole"}, 400, "invalid_query"},
		{"infeasible loop", "/api/loop", loopRequest{Origin: "Alpha", TargetJumps: 4, MinBorders: 1}, 404, "no_loop"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, h, "POST", tc.path, tc.body)
			if w.Code != tc.wantCode {
				t.Fatalf("code = %d, want %d (body %s)", w.Code, tc.wantCode, w.Body.String())
			}
			var got map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if got["error"] != tc.wantKind {
				t.Fatalf("error kind = %q, want %q", got["error"], tc.wantKind)
			}
		})
	}
}

func TestInvalidJSONRejected(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/api/route", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != 400 {
		t.Fatalf("code = %d, want 400", w.Code)
	}
}

func TestNotReady(t *testing.T) {
	s := NewServer(config.Default())
	w := doJSON(t, s.Handler(), "POST", "/api/route", routeRequest{Origin: "Alpha", Destination: "Beta"})
	if w.Code != 503 {
		t.Fatalf("code = %d, want 503 before a dataset loads", w.Code)
	}
}

func TestSystemsEndpoint(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s.Handler(), "GET", "/api/systems?ref=Alpha&ref=4", nil)
	if w.Code != 200 {
		t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
	}
	var got struct {
		Systems []engine.SystemDetail `json:"systems"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Systems) != 2 || got.Systems[0].Name != "Alpha" || got.Systems[1].ID != 4 {
		t.Fatalf("systems = %+v", got.Systems)
	}
	if got.Systems[0].RegionName != "Core" {
		t.Fatalf("region name = %q", got.Systems[0].RegionName)
	}
}

func TestAutocomplete(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s.Handler(), "GET", "/api/systems/autocomplete?q=al", nil)
	if w.Code != 200 {
		t.Fatalf("code = %d", w.Code)
	}
	var got map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got["systems"]) != 1 || got["systems"][0] != "Alpha" {
		t.Fatalf("autocomplete = %v", got["systems"])
	}
}

func TestCORSPreflight(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("OPTIONS", "/api/route", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != 204 {
		t.Fatalf("code = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}
