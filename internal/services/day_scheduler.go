package services

import (
	"errors"
	"time"

	"trip-route-service/internal/domain"
)

// ErrInvalidDateRange rejects trips whose start date falls after the end
// date. This is the only hard validation failure in the planner; everything
// else degrades to a best-effort answer.
var ErrInvalidDateRange = errors.New("trip start date is after end date")

// Default visiting window and meal slot attached to every scheduled day.
const (
	dayWindowStartHour = 9
	dayWindowEndHour   = 18
	defaultMealSlot    = "lunch"
)

// NumberOfDays returns the calendar length of the trip, minimum one day.
func NumberOfDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if end.Sub(start)%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// BucketPoints partitions points into contiguous per-day buckets in
// selection order, bucket size ceil(P/N). The size rounds up, so
// N*bucketSize >= P always holds and no point is ever dropped; the last
// day simply receives the shorter remainder. This is a deliberately
// predictable block policy, not a cost-aware partition.
//
// Points without usable coordinates keep their bucket slot: they still
// consume visiting time and count toward the day's load even though
// routing later skips them. The itinerary roster carries their
// Routed=false flag.
func BucketPoints(points []domain.PointOfInterest, days int) [][]domain.PointOfInterest {
	if days < 1 {
		days = 1
	}

	buckets := make([][]domain.PointOfInterest, days)
	n := len(points)
	if n == 0 {
		return buckets
	}

	// Ceiling division: distribute points as evenly as possible across days.
	size := (n + days - 1) / days
	for i := 0; i < days; i++ {
		start := i * size
		if start >= n {
			break
		}
		end := start + size
		if end > n {
			end = n
		}
		buckets[i] = points[start:end]
	}

	return buckets
}

// scheduleDays validates the date range and lays out one DayPlan skeleton
// per calendar day: date, point bucket, lodging reference, meal slot, and
// visiting window. Routes are attached later by the planner.
func scheduleDays(req TripRequest) ([]domain.DayPlan, error) {
	if req.StartDate.After(req.EndDate) {
		return nil, ErrInvalidDateRange
	}

	days := NumberOfDays(req.StartDate, req.EndDate)
	buckets := BucketPoints(req.Points, days)

	lodgingID := ""
	if req.Lodging != nil && req.Lodging.Location.Valid() {
		lodgingID = domain.LodgingID
	}

	plans := make([]domain.DayPlan, days)
	for i := range plans {
		plans[i] = domain.DayPlan{
			Date:            req.StartDate.AddDate(0, 0, i),
			Points:          buckets[i],
			LodgingID:       lodgingID,
			MealSlot:        defaultMealSlot,
			WindowStartHour: dayWindowStartHour,
			WindowEndHour:   dayWindowEndHour,
		}
	}

	return plans, nil
}
