package dto

type ItineraryRequest struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Points    []PointRequest  `json:"points"`
	Lodging   *LodgingRequest `json:"lodging"`
}

type StopResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates"`
}

// Travel metrics for one leg. Instructions stay empty until a provider
// that returns turn-by-turn steps is wired in.
type SegmentRouteResponse struct {
	Distance     float64  `json:"distance"`
	Duration     float64  `json:"duration"`
	Instructions []string `json:"instructions"`
}

type SegmentResponse struct {
	From   StopResponse         `json:"from"`
	To     StopResponse         `json:"to"`
	Route  SegmentRouteResponse `json:"route"`
	Source string               `json:"source"`
}

type DayPlanResponse struct {
	Date               string            `json:"date"`
	Points             []PointResponse   `json:"points"`
	LodgingID          string            `json:"lodging_id,omitempty"`
	MealSlot           string            `json:"meal_slot"`
	WindowStartHour    int               `json:"window_start_hour"`
	WindowEndHour      int               `json:"window_end_hour"`
	Route              []SegmentResponse `json:"route"`
	TotalDistanceKm    float64           `json:"total_distance_km"`
	TotalTravelMinutes float64           `json:"total_travel_minutes"`
	Algorithm          string            `json:"algorithm"`
	Load               string            `json:"load"`
	Efficiency         float64           `json:"efficiency"`
}

type PointStatusResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Routed bool   `json:"routed"`
}

type ItineraryResponse struct {
	Days                   []DayPlanResponse     `json:"days"`
	Roster                 []PointStatusResponse `json:"roster"`
	TotalDistanceKm        float64               `json:"total_distance_km"`
	TotalTravelMinutes     float64               `json:"total_travel_minutes"`
	TotalAttractionMinutes float64               `json:"total_attraction_minutes"`
	Categories             []string              `json:"categories"`
	Advisories             []string              `json:"advisories"`
}

type ShortestRouteRequest struct {
	Points  []PointRequest  `json:"points"`
	Lodging *LodgingRequest `json:"lodging"`
	From    string          `json:"from"`
	To      string          `json:"to"`
}

type ShortestRouteResponse struct {
	Path         []string `json:"path"`
	TotalMinutes float64  `json:"total_minutes"`
	Algorithm    string   `json:"algorithm"`
	Reachable    bool     `json:"reachable"`
}
