package services

import (
	"errors"
	"testing"
	"time"

	"trip-route-service/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNumberOfDays(t *testing.T) {
	cases := []struct {
		start, end time.Time
		want       int
	}{
		{date(2026, 3, 1), date(2026, 3, 1), 1},
		{date(2026, 3, 1), date(2026, 3, 2), 1},
		{date(2026, 3, 1), date(2026, 3, 3), 2},
		{date(2026, 3, 1), date(2026, 3, 8), 7},
		// Partial days round up.
		{date(2026, 3, 1), date(2026, 3, 2).Add(6 * time.Hour), 2},
	}

	for _, c := range cases {
		if got := NumberOfDays(c.start, c.end); got != c.want {
			t.Errorf("NumberOfDays(%v, %v) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestBucketPointsPartition(t *testing.T) {
	points := []domain.PointOfInterest{
		poi("p1", 0, 1), poi("p2", 0, 2), poi("p3", 0, 3),
		poi("p4", 0, 4), poi("p5", 0, 5),
	}

	buckets := BucketPoints(points, 2)
	if len(buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(buckets))
	}

	// Union preserves the original selection order and loses nothing.
	var union []string
	for _, b := range buckets {
		for _, p := range b {
			union = append(union, p.ID)
		}
	}
	want := []string{"p1", "p2", "p3", "p4", "p5"}
	if len(union) != len(want) {
		t.Fatalf("union size = %d, want %d", len(union), len(want))
	}
	for i := range want {
		if union[i] != want[i] {
			t.Fatalf("union[%d] = %q, want %q", i, union[i], want[i])
		}
	}

	if len(buckets[0]) != 3 || len(buckets[1]) != 2 {
		t.Fatalf("bucket sizes = %d, %d; want 3, 2", len(buckets[0]), len(buckets[1]))
	}
}

func TestBucketPointsMoreDaysThanPoints(t *testing.T) {
	points := []domain.PointOfInterest{poi("p1", 0, 1), poi("p2", 0, 2)}

	buckets := BucketPoints(points, 5)
	if len(buckets) != 5 {
		t.Fatalf("buckets = %d, want 5", len(buckets))
	}
	if len(buckets[0]) != 1 || len(buckets[1]) != 1 {
		t.Fatalf("expected one point in each of the first two buckets")
	}
	for i := 2; i < 5; i++ {
		if len(buckets[i]) != 0 {
			t.Fatalf("bucket %d should be empty", i)
		}
	}
}

func TestBucketPointsEmpty(t *testing.T) {
	buckets := BucketPoints(nil, 3)
	if len(buckets) != 3 {
		t.Fatalf("buckets = %d, want 3", len(buckets))
	}
	for i, b := range buckets {
		if len(b) != 0 {
			t.Fatalf("bucket %d should be empty", i)
		}
	}
}

func TestScheduleDaysRejectsInvalidRange(t *testing.T) {
	_, err := scheduleDays(TripRequest{
		StartDate: date(2026, 3, 5),
		EndDate:   date(2026, 3, 1),
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestScheduleDaysSkeleton(t *testing.T) {
	lodging := &domain.Lodging{Name: "hotel", Location: domain.GeoPoint{Lat: 0, Lon: 0}}
	plans, err := scheduleDays(TripRequest{
		StartDate: date(2026, 3, 1),
		EndDate:   date(2026, 3, 3),
		Points:    []domain.PointOfInterest{poi("p1", 0, 1), poi("p2", 0, 2), poi("p3", 0, 3)},
		Lodging:   lodging,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
	if !plans[0].Date.Equal(date(2026, 3, 1)) || !plans[1].Date.Equal(date(2026, 3, 2)) {
		t.Fatalf("unexpected day dates: %v, %v", plans[0].Date, plans[1].Date)
	}
	for _, p := range plans {
		if p.LodgingID != domain.LodgingID {
			t.Fatalf("day missing lodging reference")
		}
		if p.MealSlot == "" || p.WindowStartHour >= p.WindowEndHour {
			t.Fatalf("day missing meal slot or window: %+v", p)
		}
	}
	if len(plans[0].Points) != 2 || len(plans[1].Points) != 1 {
		t.Fatalf("bucket sizes = %d, %d; want 2, 1", len(plans[0].Points), len(plans[1].Points))
	}
}
