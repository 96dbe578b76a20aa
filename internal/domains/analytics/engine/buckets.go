// Package engine computes the derived metrics behind the admin analytics
// views. Everything in this package is a pure transformation over rows or
// aggregates that were already fetched; nothing here touches the database.
package engine

import "time"

// MonthBucket is one calendar month of a reporting window. Start is the
// first instant of the month and End the last instant belonging to it, so
// the interval is inclusive on both sides. An order created exactly at End
// belongs to this bucket, not the next.
type MonthBucket struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the bucket.
func (b MonthBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// NextStart returns the first instant of the following month, usable as an
// exclusive upper bound in range queries.
func (b MonthBucket) NextStart() time.Time {
	return b.Start.AddDate(0, 1, 0)
}

// MonthWindow produces months contiguous, non-overlapping calendar-month
// buckets ending at ref's month, oldest first. Month arithmetic rolls over
// year boundaries, so a January reference with a 12-month window starts at
// February of the previous year.
func MonthWindow(ref time.Time, months int) []MonthBucket {
	if months <= 0 {
		return nil
	}
	buckets := make([]MonthBucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := time.Date(ref.Year(), ref.Month()-time.Month(i), 1, 0, 0, 0, 0, ref.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		buckets = append(buckets, MonthBucket{
			Start: start,
			End:   end,
			Label: start.Format("Jan 2006"),
		})
	}
	return buckets
}

// MonthStart returns the first instant of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// PreviousMonthStart returns the first instant of the month before t's.
func PreviousMonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, t.Location())
}
