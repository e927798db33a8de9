package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"
)

// Explicit adapter configuration. The credential arrives here, at
// construction time; the adapter never scans the environment itself.
type Config struct {
	APIKey  string
	BaseURL string
	Profile string
	Timeout time.Duration
}

// ORSRouteProvider implements RouteProvider and RouteMatrixProvider using
// OpenRouteService.
//
// It coordinates:
//   - Directions and matrix endpoint calls with retry/backoff
//   - Free-text address resolution with a persistent geocode cache
//   - Translation of every failure mode into ports.ErrUnavailable
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	geocodeCache ports.GeocodeCache
}

func NewORSRouteProvider(cfg Config, geocodeCache ports.GeocodeCache) (*ORSRouteProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openrouteservice.org"
	}
	if cfg.Profile == "" {
		cfg.Profile = "driving-car"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	provider := &ORSRouteProvider{
		session:      &http.Client{Timeout: cfg.Timeout},
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		profile:      cfg.Profile,
		geocodeCache: geocodeCache,
	}

	return provider, nil
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// FetchRoute retrieves driving metrics for one origin/destination pair from
// the ORS directions endpoint. Every failure (bad input, timeout, non-2xx,
// malformed payload) wraps ports.ErrUnavailable so the caller falls back to
// local estimation for the pair.
func (o *ORSRouteProvider) FetchRoute(
	ctx context.Context,
	origin, destination domain.GeoPoint,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.FetchRoute")(&err)

	if !origin.Valid() || !destination.Valid() {
		return ports.RouteResult{}, fmt.Errorf("fetch route: invalid coordinates: %w", ports.ErrUnavailable)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("start", fmt.Sprintf("%f,%f", origin.Lon, origin.Lat))
		q.Set("end", fmt.Sprintf("%f,%f", destination.Lon, destination.Lat))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("fetch route: %v: %w", err, ports.ErrUnavailable)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("fetch route: decode response: %v: %w", err, ports.ErrUnavailable)
	}

	if len(decoded.Features) == 0 {
		return ports.RouteResult{}, fmt.Errorf("fetch route: empty directions response: %w", ports.ErrUnavailable)
	}

	summary := decoded.Features[0].Properties.Summary
	return ports.RouteResult{
		DistanceKm:      summary.Distance / 1000,
		DurationMinutes: summary.Duration / 60,
	}, nil
}
