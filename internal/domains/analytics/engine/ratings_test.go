package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeRatings(t *testing.T) {
	summary := SummarizeRatings([]int{5, 5, 4, 1})

	require.Len(t, summary.Distribution, 5)
	assert.Equal(t, []RatingBucket{
		{Rating: 5, Count: 2},
		{Rating: 4, Count: 1},
		{Rating: 3, Count: 0},
		{Rating: 2, Count: 0},
		{Rating: 1, Count: 1},
	}, summary.Distribution)
	assert.Equal(t, 3.8, summary.AverageRating)
	assert.Equal(t, int64(4), summary.TotalReviews)
}

func TestSummarizeRatings_Empty(t *testing.T) {
	summary := SummarizeRatings(nil)
	require.Len(t, summary.Distribution, 5)
	for _, bucket := range summary.Distribution {
		assert.Equal(t, int64(0), bucket.Count)
	}
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, int64(0), summary.TotalReviews)
}

func TestSummarizeRatings_CountsSumToTotal(t *testing.T) {
	summary := SummarizeRatings([]int{1, 2, 2, 3, 3, 3, 4, 4, 5})
	var sum int64
	for _, bucket := range summary.Distribution {
		sum += bucket.Count
	}
	assert.Equal(t, summary.TotalReviews, sum)
}

func TestSummarizeFromCounts(t *testing.T) {
	summary := SummarizeFromCounts(map[int]int64{5: 2, 4: 1, 1: 1})
	assert.Equal(t, 3.8, summary.AverageRating)
	assert.Equal(t, int64(4), summary.TotalReviews)
	require.Len(t, summary.Distribution, 5)
	assert.Equal(t, int64(0), summary.Distribution[2].Count)
}

func TestDistributionFromCounts_ZeroFillsAndOrders(t *testing.T) {
	distribution := DistributionFromCounts(map[int]int64{5: 7, 2: 1})
	require.Len(t, distribution, 5)
	assert.Equal(t, 5, distribution[0].Rating)
	assert.Equal(t, 1, distribution[4].Rating)
	assert.Equal(t, int64(0), distribution[1].Count)
	assert.Equal(t, int64(1), distribution[3].Count)
}
