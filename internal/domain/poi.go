package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// Represents a single candidate stop selected upstream (attraction,
// restaurant, viewpoint). Immutable for the duration of one planning call.
type PointOfInterest struct {
	ID         string
	Name       string
	Category   string
	Location   GeoPoint
	VisitHours float64
	Rating     *float64
}

// Stop is a node reference used in route segments: either a point of
// interest or the lodging anchor.
type Stop struct {
	ID       string
	Name     string
	Location GeoPoint
}

// Stop returns the point as a route node reference.
func (p PointOfInterest) Stop() Stop {
	return Stop{ID: p.ID, Name: p.Name, Location: p.Location}
}

const (
	defaultVisitHours = 2
	fullDayVisitHours = 8
)

// ParseVisitHours converts a free-text duration hint ("2-3 hours",
// "half day", "45 minutes") into an hour estimate.
// The first integer found wins; "day" anywhere means a full-day visit;
// unparseable input falls back to a two-hour default.
func ParseVisitHours(s string) float64 {
	lower := strings.ToLower(s)
	if strings.Contains(lower, "day") {
		return fullDayVisitHours
	}

	start := -1
	for i, r := range lower {
		if unicode.IsDigit(r) {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			n, err := strconv.Atoi(lower[start:i])
			if err != nil {
				return defaultVisitHours
			}
			return float64(n)
		}
	}
	if start != -1 {
		if n, err := strconv.Atoi(lower[start:]); err == nil {
			return float64(n)
		}
	}
	return defaultVisitHours
}
