package dto

// One candidate stop as supplied by (or returned to) the caller.
// Coordinates are [lat, lng]; a missing or malformed pair means the point
// has no usable location and is reported as unroutable.
type PointRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Coordinates []float64 `json:"coordinates"`
	Duration    string    `json:"duration"`
	Rating      *float64  `json:"rating"`
}

// Lodging supplied either as coordinates or as a free-text address to be
// geocoded. Coordinates win when both are present.
type LodgingRequest struct {
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address"`
}

type PointResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Coordinates []float64 `json:"coordinates"`
	VisitHours  float64   `json:"visit_hours"`
	Rating      *float64  `json:"rating,omitempty"`
}

type ListPointsResponse struct {
	Points []PointResponse `json:"points"`
}
