package engine

// RatingBucket is one entry of the dense five-star histogram.
type RatingBucket struct {
	Rating int
	Count  int64
}

// RatingSummary is the full five-star breakdown of a review set.
type RatingSummary struct {
	Distribution  []RatingBucket
	AverageRating float64
	TotalReviews  int64
}

// DistributionFromCounts zero-fills a sparse rating histogram into exactly
// five buckets ordered 5 down to 1. Downstream consumers rely on the fixed
// length and ordering.
func DistributionFromCounts(counts map[int]int64) []RatingBucket {
	distribution := make([]RatingBucket, 0, 5)
	for rating := 5; rating >= 1; rating-- {
		distribution = append(distribution, RatingBucket{Rating: rating, Count: counts[rating]})
	}
	return distribution
}

// SummarizeFromCounts builds the summary from an already-grouped histogram,
// as returned by a group-by query.
func SummarizeFromCounts(counts map[int]int64) RatingSummary {
	var sum, total int64
	for rating, count := range counts {
		if rating < 1 || rating > 5 {
			continue
		}
		sum += int64(rating) * count
		total += count
	}
	var average float64
	if total > 0 {
		average = Round1(float64(sum) / float64(total))
	}
	return RatingSummary{
		Distribution:  DistributionFromCounts(counts),
		AverageRating: average,
		TotalReviews:  total,
	}
}

// SummarizeRatings builds the histogram, mean (1 decimal), and total from
// raw rating values. Ratings outside [1,5] never occur per the review
// invariant and are ignored if present.
func SummarizeRatings(ratings []int) RatingSummary {
	counts := make(map[int]int64, 5)
	var sum, total int64
	for _, rating := range ratings {
		if rating < 1 || rating > 5 {
			continue
		}
		counts[rating]++
		sum += int64(rating)
		total++
	}
	var average float64
	if total > 0 {
		average = Round1(float64(sum) / float64(total))
	}
	return RatingSummary{
		Distribution:  DistributionFromCounts(counts),
		AverageRating: average,
		TotalReviews:  total,
	}
}
