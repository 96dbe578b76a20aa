package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow_TwelveMonths(t *testing.T) {
	ref := time.Date(2025, time.June, 17, 15, 4, 5, 0, time.UTC)
	buckets := MonthWindow(ref, 12)
	require.Len(t, buckets, 12)

	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, "Jul 2024", buckets[0].Label)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), buckets[11].Start)
	assert.Equal(t, "Jun 2025", buckets[11].Label)
}

func TestMonthWindow_YearRollover(t *testing.T) {
	// January minus 11 months must land on January of the previous year.
	ref := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)
	buckets := MonthWindow(ref, 12)
	require.Len(t, buckets, 12)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, "Jan 2025", buckets[11].Label)
}

func TestMonthWindow_ContiguousAndDisjoint(t *testing.T) {
	buckets := MonthWindow(time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC), 12)
	for i := 1; i < len(buckets); i++ {
		assert.Equal(t, buckets[i-1].NextStart(), buckets[i].Start, "bucket %d not contiguous", i)
		assert.True(t, buckets[i-1].End.Before(buckets[i].Start), "bucket %d overlaps previous", i)
	}
}

func TestMonthBucket_EveryInstantInExactlyOneBucket(t *testing.T) {
	buckets := MonthWindow(time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC), 12)
	samples := []time.Time{
		buckets[0].Start,
		buckets[3].End, // month-end belongs to that month, not the next
		buckets[4].Start,
		time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC),
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, sample := range samples {
		owners := 0
		for _, bucket := range buckets {
			if bucket.Contains(sample) {
				owners++
			}
		}
		assert.Equal(t, 1, owners, "instant %s owned by %d buckets", sample, owners)
	}
}

func TestMonthWindow_EmptyForNonPositive(t *testing.T) {
	assert.Nil(t, MonthWindow(time.Now(), 0))
	assert.Nil(t, MonthWindow(time.Now(), -3))
}

func TestMonthStart(t *testing.T) {
	ts := time.Date(2025, time.May, 20, 13, 7, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), MonthStart(ts))
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), PreviousMonthStart(ts))
	// January rolls back into December of the previous year.
	jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), PreviousMonthStart(jan))
}
