package schedule

import (
	"testing"
	"time"
)

func iv(t *testing.T, startH, startM, endH, endM int) Interval {
	t.Helper()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: day.Add(time.Duration(startH)*time.Hour + time.Duration(startM)*time.Minute),
		End:   day.Add(time.Duration(endH)*time.Hour + time.Duration(endM)*time.Minute),
	}
}

func TestOverlaps_Touching(t *testing.T) {
	a := iv(t, 10, 0, 11, 0)
	b := iv(t, 11, 0, 12, 0)

	if a.Overlaps(b) {
		t.Fatalf("intervals that only touch must not overlap")
	}
	if b.Overlaps(a) {
		t.Fatalf("overlap must be symmetric for touching intervals")
	}
}

func TestOverlaps_Partial(t *testing.T) {
	a := iv(t, 10, 0, 11, 0)
	b := iv(t, 10, 30, 11, 30)

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatalf("partially intersecting intervals must overlap")
	}
}

func TestOverlaps_Contained(t *testing.T) {
	outer := iv(t, 9, 0, 18, 0)
	inner := iv(t, 12, 0, 12, 45)

	if !outer.Overlaps(inner) || !inner.Overlaps(outer) {
		t.Fatalf("contained interval must overlap")
	}
}

func TestOverlaps_Disjoint(t *testing.T) {
	a := iv(t, 8, 0, 9, 0)
	b := iv(t, 15, 0, 16, 0)

	if a.Overlaps(b) || b.Overlaps(a) {
		t.Fatalf("disjoint intervals must not overlap")
	}
}
