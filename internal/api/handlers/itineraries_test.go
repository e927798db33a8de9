package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/services"
)

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func validItineraryBody() string {
	return `{
		"start_date": "2026-03-01",
		"end_date": "2026-03-03",
		"lodging": {"name": "hotel", "coordinates": [28.6139, 77.2090]},
		"points": [
			{"id": "red-fort", "name": "Red Fort", "category": "historical", "coordinates": [28.6562, 77.2410], "duration": "2 hours"},
			{"id": "qutub", "name": "Qutub Minar", "category": "historical", "coordinates": [28.5245, 77.1855], "duration": "2 hours"},
			{"id": "lotus", "name": "Lotus Temple", "category": "religious", "coordinates": [28.5535, 77.2588], "duration": "1 hour"},
			{"id": "india-gate", "name": "India Gate", "category": "monument", "coordinates": [28.6129, 77.2295], "duration": "1 hour"}
		]
	}`
}

func TestItineraryCreate(t *testing.T) {
	h := &ItineraryHandler{Planner: &services.TripPlanner{}}

	rec := postJSON(t, h.Create, validItineraryBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res dto.ItineraryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(res.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(res.Days))
	}
	if res.Days[0].Date != "2026-03-01" || res.Days[1].Date != "2026-03-02" {
		t.Fatalf("unexpected day dates: %q, %q", res.Days[0].Date, res.Days[1].Date)
	}
	for i, day := range res.Days {
		if len(day.Route) != 3 {
			t.Fatalf("day %d segments = %d, want 3", i, len(day.Route))
		}
		if day.Route[0].From.ID != "lodging" || day.Route[len(day.Route)-1].To.ID != "lodging" {
			t.Fatalf("day %d route is not anchored at the lodging", i)
		}
		// No provider is configured, so every leg is an estimate.
		for _, seg := range day.Route {
			if seg.Source != "estimate" {
				t.Fatalf("segment source = %q, want estimate", seg.Source)
			}
		}
		if day.Algorithm != "nearest_neighbor" {
			t.Fatalf("day %d algorithm = %q, want nearest_neighbor", i, day.Algorithm)
		}
	}
	if len(res.Roster) != 4 {
		t.Fatalf("roster = %d points, want 4", len(res.Roster))
	}
	for _, p := range res.Roster {
		if !p.Routed {
			t.Fatalf("point %q unexpectedly unroutable", p.ID)
		}
	}
	if len(res.Categories) != 3 {
		t.Fatalf("categories = %v, want three distinct", res.Categories)
	}
}

func TestItineraryCreateRejectsBadDates(t *testing.T) {
	h := &ItineraryHandler{Planner: &services.TripPlanner{}}

	rec := postJSON(t, h.Create, `{"start_date": "01-03-2026", "end_date": "2026-03-03", "points": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed start_date: status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, h.Create, `{"start_date": "2026-03-05", "end_date": "2026-03-01", "points": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted range: status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "start_date must not be after end_date") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestItineraryCreateRejectsBadPoints(t *testing.T) {
	h := &ItineraryHandler{Planner: &services.TripPlanner{}}

	cases := []struct {
		name string
		body string
	}{
		{"missing id", `{"start_date": "2026-03-01", "end_date": "2026-03-02", "points": [{"name": "x"}]}`},
		{"reserved id", `{"start_date": "2026-03-01", "end_date": "2026-03-02", "points": [{"id": "lodging"}]}`},
		{"duplicate id", `{"start_date": "2026-03-01", "end_date": "2026-03-02", "points": [{"id": "a"}, {"id": "a"}]}`},
	}
	for _, c := range cases {
		rec := postJSON(t, h.Create, c.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c.name, rec.Code)
		}
	}
}

func TestItineraryCreateRejectsMalformedBody(t *testing.T) {
	h := &ItineraryHandler{Planner: &services.TripPlanner{}}

	rec := postJSON(t, h.Create, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid json: status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, h.Create, `{"start_date": "2026-03-01", "end_date": "2026-03-02", "unknown_field": 1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: status = %d, want 400", rec.Code)
	}

	rec = postJSON(t, h.Create, `{"start_date": "2026-03-01", "end_date": "2026-03-02", "points": []}{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("trailing object: status = %d, want 400", rec.Code)
	}
}

func TestItineraryCreateMethodNotAllowed(t *testing.T) {
	h := &ItineraryHandler{Planner: &services.TripPlanner{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", got)
	}
}

func TestItineraryCreateWithUnroutablePoint(t *testing.T) {
	h := &ItineraryHandler{Planner: &services.TripPlanner{}}

	body := `{
		"start_date": "2026-03-01",
		"end_date": "2026-03-02",
		"points": [
			{"id": "ok", "name": "OK", "coordinates": [28.6, 77.2]},
			{"id": "nowhere", "name": "Nowhere"}
		]
	}`
	rec := postJSON(t, h.Create, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res dto.ItineraryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	routed := map[string]bool{}
	for _, p := range res.Roster {
		routed[p.ID] = p.Routed
	}
	if routed["nowhere"] || !routed["ok"] {
		t.Fatalf("roster misreports routability: %v", routed)
	}
}
