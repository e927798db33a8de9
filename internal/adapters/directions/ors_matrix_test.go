package directions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *ORSRouteProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewORSRouteProvider(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestFetchRouteMatrixPartialCells(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/matrix/driving-car" {
			http.NotFound(w, r)
			return
		}
		var req matrixRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Off-diagonal cells are unresolvable; metrics are meters/seconds.
		json.NewEncoder(w).Encode(map[string]any{
			"distances": [][]any{{1000.0, nil}, {nil, 2000.0}},
			"durations": [][]any{{600.0, nil}, {nil, 1200.0}},
		})
	})

	origins := []domain.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}
	destinations := []domain.GeoPoint{{Lat: 0, Lon: 2}, {Lat: 0, Lon: 3}}

	matrix, err := p.FetchRouteMatrix(context.Background(), origins, destinations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if matrix[0][1] != nil || matrix[1][0] != nil {
		t.Fatalf("unresolved cells must stay nil, got %+v", matrix)
	}
	if got := matrix[0][0]; got == nil || got.DistanceKm != 1 || got.DurationMinutes != 10 {
		t.Fatalf("cell [0][0] = %+v, want 1 km / 10 min", got)
	}
	if got := matrix[1][1]; got == nil || got.DistanceKm != 2 || got.DurationMinutes != 20 {
		t.Fatalf("cell [1][1] = %+v, want 2 km / 20 min", got)
	}
}

func TestFetchRouteMatrixRowMismatch(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"distances": [][]any{{1000.0, 2000.0}},
			"durations": [][]any{{600.0, 1200.0}},
		})
	})

	origins := []domain.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}
	destinations := []domain.GeoPoint{{Lat: 0, Lon: 2}, {Lat: 0, Lon: 3}}

	_, err := p.FetchRouteMatrix(context.Background(), origins, destinations)
	if !errors.Is(err, ports.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for a malformed matrix, got %v", err)
	}
}

func TestFetchRouteMatrixRejectsInvalidCoordinates(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request should be sent for invalid input")
	})

	_, err := p.FetchRouteMatrix(context.Background(),
		[]domain.GeoPoint{domain.Absent()},
		[]domain.GeoPoint{{Lat: 0, Lon: 1}},
	)
	if !errors.Is(err, ports.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for invalid origin, got %v", err)
	}
}
