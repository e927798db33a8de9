package domain

import "time"

// Identifies which algorithm produced a day's route. Consumers use this to
// assert on fallback behavior; the planner never hides a degradation.
const (
	AlgorithmNearestNeighbor = "nearest_neighbor"
	AlgorithmSimplePath      = "simple_path"
	AlgorithmDijkstra        = "dijkstra"
	AlgorithmNone            = "none"
)

// Identifies where a segment's distance and duration came from.
const (
	SourceProvider = "provider"
	SourceEstimate = "estimate"
)

// Per-day load classification, threshold-based on stop count.
const (
	LoadGood     = "good"
	LoadModerate = "moderate"
	LoadBusy     = "busy"
)

// One leg of a day's route between two validated stops.
type RouteSegment struct {
	From            Stop
	To              Stop
	DistanceKm      float64
	DurationMinutes float64
	Source          string
}

// The planned schedule and route for one calendar day of the trip.
// A DayPlan is immutable planning output and contains no side effects.
type DayPlan struct {
	Date               time.Time
	Points             []PointOfInterest
	LodgingID          string
	MealSlot           string
	WindowStartHour    int
	WindowEndHour      int
	Route              []RouteSegment
	TotalDistanceKm    float64
	TotalTravelMinutes float64
	Algorithm          string
	Load               string
	Efficiency         float64
}

// Records whether a selected point contributed to any route.
// Points with unusable coordinates stay on the roster with Routed=false
// so callers can surface "no location available".
type PointStatus struct {
	ID     string
	Name   string
	Routed bool
}

// The full trip plan: one DayPlan per calendar day plus trip-level
// aggregates and advisory messages. Regenerated in full whenever the
// selection changes; there is no incremental update contract.
type Itinerary struct {
	Days                   []DayPlan
	Roster                 []PointStatus
	TotalDistanceKm        float64
	TotalTravelMinutes     float64
	TotalAttractionMinutes float64
	Categories             []string
	Advisories             []string
}
