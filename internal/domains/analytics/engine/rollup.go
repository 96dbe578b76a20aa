package engine

import "time"

// Revenue is recognized only for orders in these terminal states.
const (
	StatusCompleted = "COMPLETED"
	StatusDelivered = "DELIVERED"
)

// IsRevenueStatus reports whether an order status counts toward revenue.
func IsRevenueStatus(status string) bool {
	return status == StatusCompleted || status == StatusDelivered
}

// OrderSample is the slice of an order row the engine needs.
type OrderSample struct {
	CustomerID  string
	Status      string
	FinalAmount float64
	CreatedAt   time.Time
}

// ReviewSample is the slice of a review row the engine needs.
type ReviewSample struct {
	Rating    int
	CreatedAt time.Time
}

// BucketTotals carries the raw per-bucket aggregates, either summed here from
// rows or fetched directly from the store.
type BucketTotals struct {
	Orders          int64
	Revenue         float64
	CompletedOrders int64
	AvgRating       float64
	Customers       int64
}

// MonthlyPoint is one fully derived month of a performance series.
type MonthlyPoint struct {
	Month           string
	Orders          int64
	Revenue         float64
	CompletedOrders int64
	AvgRating       float64
	Customers       int64
	CompletionRate  int
}

// NewMonthlyPoint derives the reported metrics for one bucket. Revenue is
// rounded to 2 decimals, the average rating to 1, and the completion rate is
// an integer percentage that is 0 when the bucket has no orders.
func NewMonthlyPoint(bucket MonthBucket, totals BucketTotals) MonthlyPoint {
	completionRate := 0
	if totals.Orders > 0 {
		completionRate = int(Round(float64(totals.CompletedOrders)/float64(totals.Orders)*100, 0))
	}
	return MonthlyPoint{
		Month:           bucket.Label,
		Orders:          totals.Orders,
		Revenue:         Round2(totals.Revenue),
		CompletedOrders: totals.CompletedOrders,
		AvgRating:       Round1(totals.AvgRating),
		Customers:       totals.Customers,
		CompletionRate:  completionRate,
	}
}

// Rollup buckets raw order and review rows into a monthly series. All six
// metrics of a point are computed over the same bucket bounds, so a row
// contributes to exactly one bucket.
func Rollup(buckets []MonthBucket, orders []OrderSample, reviews []ReviewSample) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, len(buckets))
	for _, bucket := range buckets {
		var totals BucketTotals
		customers := make(map[string]struct{})
		for _, order := range orders {
			if !bucket.Contains(order.CreatedAt) {
				continue
			}
			totals.Orders++
			customers[order.CustomerID] = struct{}{}
			if IsRevenueStatus(order.Status) {
				totals.CompletedOrders++
				totals.Revenue += order.FinalAmount
			}
		}
		var ratingSum, ratingCount int64
		for _, review := range reviews {
			if !bucket.Contains(review.CreatedAt) {
				continue
			}
			ratingSum += int64(review.Rating)
			ratingCount++
		}
		if ratingCount > 0 {
			totals.AvgRating = float64(ratingSum) / float64(ratingCount)
		}
		totals.Customers = int64(len(customers))
		points = append(points, NewMonthlyPoint(bucket, totals))
	}
	return points
}

// SeriesOverview sums a monthly series into the headline overview numbers.
// The average completion rate divides by the window size, not by the number
// of non-empty months.
type SeriesOverview struct {
	TotalOrders       int64
	TotalRevenue      float64
	AvgCompletionRate float64
}

// Summarize computes the overview for a monthly series.
func Summarize(points []MonthlyPoint) SeriesOverview {
	var overview SeriesOverview
	var rateSum float64
	for _, p := range points {
		overview.TotalOrders += p.Orders
		overview.TotalRevenue += p.Revenue
		rateSum += float64(p.CompletionRate)
	}
	if overview.TotalOrders > 0 && len(points) > 0 {
		overview.AvgCompletionRate = Round2(rateSum / float64(len(points)))
	}
	return overview
}
