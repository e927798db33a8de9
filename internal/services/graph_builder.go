package services

import (
	"errors"

	"trip-route-service/internal/domain"
)

// ErrInsufficientData signals that fewer than two points carried usable
// coordinates, so no route graph can exist. It is a legitimate, common
// state for sparse selections, not an internal failure.
var ErrInsufficientData = errors.New("fewer than 2 points with valid coordinates")

// One outgoing edge of the route graph.
type GraphEdge struct {
	To         string
	DistanceKm float64
	Minutes    float64
}

// Complete weighted directed graph over the lodging (if any) and all
// points of interest with valid coordinates. Built fresh per planning
// call and read-only once constructed.
type RouteGraph struct {
	// Node ids in insertion order (lodging first when present).
	Order []string
	Stops map[string]domain.Stop
	Adj   map[string][]GraphEdge
}

// BuildGraph validates every candidate coordinate and connects each ordered
// pair of valid nodes with an estimated travel-time edge. Points with
// invalid or missing coordinates are excluded from the graph but reported
// back so callers can surface them.
//
// Deterministic: the same ids and coordinates always yield the same graph.
// No external calls happen at this stage.
func BuildGraph(lodging *domain.Lodging, points []domain.PointOfInterest) (*RouteGraph, []string, error) {
	excluded := make([]string, 0)

	stops := make([]domain.Stop, 0, len(points)+1)
	if lodging != nil {
		if lodging.Location.Valid() {
			stops = append(stops, lodging.Stop())
		} else {
			excluded = append(excluded, domain.LodgingID)
		}
	}
	for _, p := range points {
		if !p.Location.Valid() {
			excluded = append(excluded, p.ID)
			continue
		}
		stops = append(stops, p.Stop())
	}

	if len(stops) < 2 {
		return nil, excluded, ErrInsufficientData
	}

	g := &RouteGraph{
		Order: make([]string, 0, len(stops)),
		Stops: make(map[string]domain.Stop, len(stops)),
		Adj:   make(map[string][]GraphEdge, len(stops)),
	}
	for _, s := range stops {
		g.Order = append(g.Order, s.ID)
		g.Stops[s.ID] = s
	}

	for _, from := range stops {
		edges := make([]GraphEdge, 0, len(stops)-1)
		for _, to := range stops {
			if to.ID == from.ID {
				continue
			}
			km := DistanceKm(from.Location, to.Location)
			edges = append(edges, GraphEdge{
				To:         to.ID,
				DistanceKm: km,
				Minutes:    EstimateTravelMinutes(km),
			})
		}
		g.Adj[from.ID] = edges
	}

	return g, excluded, nil
}
