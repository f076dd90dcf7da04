package planner

import "time"

// dateLayouts are the accepted calendar-date formats, tried in order.
var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006", "2006/01/02"}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// defaultFutureRange is the substitute window for missing or invalid
// dates: a 3-day trip starting a week from now.
func defaultFutureRange(now time.Time) (time.Time, time.Time) {
	start := now.AddDate(0, 0, 7)
	return start, start.AddDate(0, 0, 2)
}

// resolveDates parses the requested range, falling back to the default
// future window when either bound is missing, unparseable, or reversed.
func resolveDates(startDate, endDate string, now time.Time) (time.Time, time.Time) {
	d0, ok0 := parseDate(startDate)
	d1, ok1 := parseDate(endDate)
	if !ok0 || !ok1 || d1.Before(d0) {
		return defaultFutureRange(now)
	}
	return d0, d1
}

// dateRange expands an inclusive date span into its calendar days. The
// walk uses calendar arithmetic, not durations, so a DST transition
// inside the span cannot drop a day.
func dateRange(d0, d1 time.Time) []time.Time {
	var days []time.Time
	for d := d0; !d.After(d1); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
