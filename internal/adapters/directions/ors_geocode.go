package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a free-text address (typically the lodging) into a
// coordinate using OpenRouteService (/geocode/search), backed by the
// persistent geocode cache. A failed lookup is an error the caller
// handles by leaving the lodging absent; planning then degrades to an
// open path.
func (o *ORSRouteProvider) Geocode(ctx context.Context, address string) (_ domain.GeoPoint, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Absent(), fmt.Errorf("geocode: address must be non-empty")
	}

	if o.geocodeCache != nil {
		hits, err := o.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("op=geocode.cache.get err=%v", err)
		} else if p, ok := hits[norm]; ok {
			return p, nil
		}
	}

	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Absent(), fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Absent(), fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Absent(), fmt.Errorf("geocode %q: no results", norm)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Absent(), fmt.Errorf("geocode %q: invalid coordinate format", norm)
	}

	point := domain.GeoPoint{Lat: coords[1], Lon: coords[0]}
	if !point.Valid() {
		return domain.Absent(), fmt.Errorf("geocode %q: coordinate out of range", norm)
	}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.PutMany(ctx, map[string]domain.GeoPoint{norm: point}); err != nil {
			log.Printf("op=geocode.cache.put err=%v", err)
		}
	}

	return point, nil
}
