package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"trip-route-service/internal/api/dto"
)

func TestShortestRoute(t *testing.T) {
	h := &RouteHandler{}

	// Collinear points along the equator: the direct hop is optimal.
	body := `{
		"from": "lodging",
		"to": "far",
		"lodging": {"name": "hotel", "coordinates": [0, 0]},
		"points": [
			{"id": "near", "name": "Near", "coordinates": [0, 1]},
			{"id": "far", "name": "Far", "coordinates": [0, 3]}
		]
	}`
	rec := postJSON(t, h.Shortest, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res dto.ShortestRouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Reachable || res.Algorithm != "dijkstra" {
		t.Fatalf("unexpected response: %+v", res)
	}
	if len(res.Path) != 2 || res.Path[0] != "lodging" || res.Path[1] != "far" {
		t.Fatalf("path = %v, want [lodging far]", res.Path)
	}
	if res.TotalMinutes <= 0 {
		t.Fatalf("total minutes = %v, want positive", res.TotalMinutes)
	}
}

func TestShortestRouteUnknownEndpoint(t *testing.T) {
	h := &RouteHandler{}

	body := `{
		"from": "a",
		"to": "ghost",
		"points": [
			{"id": "a", "coordinates": [0, 1]},
			{"id": "b", "coordinates": [0, 2]}
		]
	}`
	rec := postJSON(t, h.Shortest, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res dto.ShortestRouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Reachable || res.Algorithm != "none" || len(res.Path) != 0 {
		t.Fatalf("unreachable endpoint should yield an empty tagged answer, got %+v", res)
	}
}

func TestShortestRouteInsufficientData(t *testing.T) {
	h := &RouteHandler{}

	body := `{"from": "a", "to": "b", "points": [{"id": "a", "coordinates": [0, 1]}]}`
	rec := postJSON(t, h.Shortest, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res dto.ShortestRouteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Algorithm != "none" || len(res.Path) != 0 {
		t.Fatalf("single-node graph should answer with no path, got %+v", res)
	}
}

func TestShortestRouteRequiresEndpoints(t *testing.T) {
	h := &RouteHandler{}

	rec := postJSON(t, h.Shortest, `{"from": "", "to": "b", "points": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
