package services

import (
	"fmt"
	"sort"

	"trip-route-service/internal/domain"
)

// Load classification thresholds on per-day stop counts. Fixed by design:
// the classification is an explainable label, not a derived metric.
const (
	goodLoadMax     = 2
	moderateLoadMax = 4
)

// BuildItinerary aggregates routed day plans into the trip-level view:
// totals, per-day efficiency and load labels, category diversity, and
// advisory messages. Advisories are recommendations only and never mutate
// the plans.
//
// Every point in a day's bucket counts toward its load label and
// attraction minutes, including unroutable ones: a visit still takes time
// whether or not a route reaches it. The roster is the signal for which
// points actually routed.
func BuildItinerary(days []domain.DayPlan, roster []domain.PointStatus) *domain.Itinerary {
	it := &domain.Itinerary{
		Days:       days,
		Roster:     roster,
		Advisories: []string{},
	}

	categories := make(map[string]struct{})
	for i := range it.Days {
		day := &it.Days[i]

		attractionMinutes := 0.0
		for _, pt := range day.Points {
			attractionMinutes += pt.VisitHours * 60
			if pt.Category != "" {
				categories[pt.Category] = struct{}{}
			}
		}

		day.Load = classifyLoad(len(day.Points))
		day.Efficiency = efficiency(attractionMinutes, day.TotalTravelMinutes)

		it.TotalDistanceKm += day.TotalDistanceKm
		it.TotalTravelMinutes += day.TotalTravelMinutes
		it.TotalAttractionMinutes += attractionMinutes

		if day.Load == domain.LoadBusy {
			it.Advisories = append(it.Advisories,
				fmt.Sprintf("day %d is overloaded: %d stops planned", i+1, len(day.Points)))
		}
		if day.Algorithm == domain.AlgorithmNone && len(day.Points) > 0 {
			it.Advisories = append(it.Advisories,
				fmt.Sprintf("day %d has stops but no routable path", i+1))
		}
	}

	it.Categories = make([]string, 0, len(categories))
	for c := range categories {
		it.Categories = append(it.Categories, c)
	}
	sort.Strings(it.Categories)

	if len(it.Categories) == 1 && len(roster) > 2 {
		it.Advisories = append(it.Advisories,
			fmt.Sprintf("all stops share one category (%s); consider mixing in other interests", it.Categories[0]))
	}

	return it
}

func classifyLoad(stops int) string {
	switch {
	case stops <= goodLoadMax:
		return domain.LoadGood
	case stops <= moderateLoadMax:
		return domain.LoadModerate
	default:
		return domain.LoadBusy
	}
}

// efficiency is the share of a day spent at attractions rather than in
// transit. A day with neither travel nor visits scores zero.
func efficiency(attractionMinutes, travelMinutes float64) float64 {
	total := attractionMinutes + travelMinutes
	if total == 0 {
		return 0
	}
	return attractionMinutes / total
}
