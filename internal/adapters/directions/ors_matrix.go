package directions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// FetchRouteMatrix retrieves an origins x destinations metrics matrix from
// the OpenRouteService matrix endpoint.
//
// Cells the service could not resolve come back nil; partial answers are
// not an error. A failure of the whole call wraps ports.ErrUnavailable.
func (o *ORSRouteProvider) FetchRouteMatrix(
	ctx context.Context,
	origins, destinations []domain.GeoPoint,
) (_ [][]*ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.FetchRouteMatrix")(&err)

	if len(origins) == 0 || len(destinations) == 0 {
		return [][]*ports.RouteResult{}, nil
	}
	for _, p := range origins {
		if !p.Valid() {
			return nil, fmt.Errorf("fetch route matrix: invalid origin coordinate: %w", ports.ErrUnavailable)
		}
	}
	for _, p := range destinations {
		if !p.Valid() {
			return nil, fmt.Errorf("fetch route matrix: invalid destination coordinate: %w", ports.ErrUnavailable)
		}
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(origins)+len(destinations))
	sources := make([]int, 0, len(origins))
	destIdx := make([]int, 0, len(destinations))
	for i, p := range origins {
		locations = append(locations, p.CoordsToList())
		sources = append(sources, i)
	}
	for i, p := range destinations {
		locations = append(locations, p.CoordsToList())
		destIdx = append(destIdx, len(origins)+i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Sources:      sources,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch route matrix: marshal request: %v: %w", err, ports.ErrUnavailable)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("fetch route matrix: %v: %w", err, ports.ErrUnavailable)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("fetch route matrix: decode response: %v: %w", err, ports.ErrUnavailable)
	}

	if len(mr.Distances) != len(origins) || len(mr.Durations) != len(origins) {
		return nil, fmt.Errorf(
			"fetch route matrix: expected %d source rows, got distances=%d durations=%d: %w",
			len(origins), len(mr.Distances), len(mr.Durations), ports.ErrUnavailable,
		)
	}

	out := make([][]*ports.RouteResult, len(origins))
	for i := range origins {
		rowDistances := mr.Distances[i]
		rowDurations := mr.Durations[i]
		if len(rowDistances) != len(destinations) || len(rowDurations) != len(destinations) {
			return nil, fmt.Errorf(
				"fetch route matrix: row %d length mismatch: distances=%d durations=%d destinations=%d: %w",
				i, len(rowDistances), len(rowDurations), len(destinations), ports.ErrUnavailable,
			)
		}

		out[i] = make([]*ports.RouteResult, len(destinations))
		for j := range destinations {
			metersPtr := rowDistances[j]
			secondsPtr := rowDurations[j]
			if metersPtr == nil || secondsPtr == nil {
				continue
			}
			out[i][j] = &ports.RouteResult{
				DistanceKm:      *metersPtr / 1000,
				DurationMinutes: *secondsPtr / 60,
			}
		}
	}

	return out, nil
}
