package domain

// LodgingID is the reserved node identifier for the trip's accommodation.
// Points of interest must never use it.
const LodgingID = "lodging"

// The single fixed accommodation anchoring each day's round trip.
// At most one per planning call, and optional: without it routes degrade
// to an open path with no return leg.
type Lodging struct {
	Name     string
	Location GeoPoint
}

// Stop returns the lodging as a route node reference.
func (l Lodging) Stop() Stop {
	return Stop{ID: LodgingID, Name: l.Name, Location: l.Location}
}
