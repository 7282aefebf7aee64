package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clock(h, m int) time.Time {
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC)
}

func at(day, h, m int) time.Time {
	return time.Date(2026, 3, day, h, m, 0, 0, time.UTC)
}

func TestSplitNightDay_DayOnlyInterval(t *testing.T) {
	night, day := SplitNightDay(at(10, 9, 0), at(10, 17, 0), clock(22, 0), clock(6, 0))

	assert.InDelta(t, 0.0, night, 1e-9)
	assert.InDelta(t, 8.0, day, 1e-9)
}

func TestSplitNightDay_CrossesMidnight(t *testing.T) {
	// 22:15 -> 06:10 next morning against a 22:00-06:00 night window.
	night, day := SplitNightDay(at(10, 22, 15), at(11, 6, 10), clock(22, 0), clock(6, 0))

	assert.InDelta(t, 7.75, night, 1e-9)
	assert.InDelta(t, 10.0/60.0, day, 1e-9)
}

func TestSplitNightDay_LongMixedInterval(t *testing.T) {
	// 20:00 -> 08:00 next morning: 8 night hours, 4 day hours.
	night, day := SplitNightDay(at(10, 20, 0), at(11, 8, 0), clock(22, 0), clock(6, 0))

	assert.InDelta(t, 8.0, night, 1e-9)
	assert.InDelta(t, 4.0, day, 1e-9)
}

func TestSplitNightDay_NonWrappingWindow(t *testing.T) {
	// Window 01:00-05:00 does not wrap; interval covers it fully.
	night, day := SplitNightDay(at(10, 0, 0), at(10, 6, 0), clock(1, 0), clock(5, 0))

	assert.InDelta(t, 4.0, night, 1e-9)
	assert.InDelta(t, 2.0, day, 1e-9)
}

func TestSplitNightDay_Conservation(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"short day stretch", at(10, 9, 13), at(10, 16, 47)},
		{"overnight stretch", at(10, 21, 3), at(11, 7, 21)},
		{"multi-day stretch", at(10, 18, 0), at(12, 9, 30)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			night, day := SplitNightDay(tc.start, tc.end, clock(22, 0), clock(6, 0))
			total := tc.end.Sub(tc.start).Hours()
			assert.InDelta(t, total, night+day, 1e-9)
			assert.GreaterOrEqual(t, night, 0.0)
			assert.GreaterOrEqual(t, day, 0.0)
		})
	}
}

func TestSplitNightDay_DegenerateInterval(t *testing.T) {
	night, day := SplitNightDay(at(10, 9, 0), at(10, 9, 0), clock(22, 0), clock(6, 0))
	assert.Zero(t, night)
	assert.Zero(t, day)

	night, day = SplitNightDay(at(10, 9, 0), at(10, 8, 0), clock(22, 0), clock(6, 0))
	assert.Zero(t, night)
	assert.Zero(t, day)
}

func TestBreakOverlap_Partial(t *testing.T) {
	// Session starts mid-break: only 13:15-13:30 overlaps.
	got := BreakOverlap(at(10, 13, 15), at(10, 18, 0), clock(13, 0), clock(13, 30))
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestBreakOverlap_NoOverlap(t *testing.T) {
	got := BreakOverlap(at(10, 14, 0), at(10, 18, 0), clock(13, 0), clock(13, 30))
	assert.Zero(t, got)
}

func TestBreakOverlap_OvernightSessionHitsNextDayBreak(t *testing.T) {
	// 22:15 -> 06:10 next morning crosses the 01:00-01:30 break once.
	got := BreakOverlap(at(10, 22, 15), at(11, 6, 10), clock(1, 0), clock(1, 30))
	assert.InDelta(t, 0.5, got, 1e-9)
}
