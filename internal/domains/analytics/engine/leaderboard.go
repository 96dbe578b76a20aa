package engine

import (
	"sort"
	"time"
)

// Leaderboard sort keys accepted by the cross-laundry ranking.
const (
	SortByOrdersMonth = "ordersMonth"
	SortByCustomers   = "customers"
	SortByRevenue     = "revenue"
	SortByRating      = "rating"
)

// LeaderboardMetrics are the per-laundry derived values of the leaderboard:
// order count and recognized revenue for the current month, distinct
// customers across all fetched orders, and the mean review rating.
type LeaderboardMetrics struct {
	OrdersMonth int64
	Customers   int64
	Revenue     float64
	Rating      float64
}

// MonthToDate derives the leaderboard metrics for one laundry from its raw
// order rows and review ratings. monthStart bounds the "this month" figures;
// the customer count spans every order passed in.
func MonthToDate(orders []OrderSample, ratings []int, monthStart time.Time) LeaderboardMetrics {
	var metrics LeaderboardMetrics
	customers := make(map[string]struct{})
	for _, order := range orders {
		customers[order.CustomerID] = struct{}{}
		if order.CreatedAt.Before(monthStart) {
			continue
		}
		metrics.OrdersMonth++
		if IsRevenueStatus(order.Status) {
			metrics.Revenue += order.FinalAmount
		}
	}
	metrics.Customers = int64(len(customers))
	metrics.Revenue = Round2(metrics.Revenue)
	if len(ratings) > 0 {
		var sum int64
		for _, rating := range ratings {
			sum += int64(rating)
		}
		metrics.Rating = Round1(float64(sum) / float64(len(ratings)))
	}
	return metrics
}

// LeaderboardEntry is one ranked laundry row.
type LeaderboardEntry struct {
	ID           string
	Name         string
	Address      string
	City         string
	Status       string
	OrdersMonth  int64
	Customers    int64
	Revenue      float64
	Rating       float64
	TotalOrders  int64
	TotalReviews int64
	CreatedAt    time.Time
}

// SortByCustomersWithinPage reorders a page of entries by their derived
// customer count. The customer count is computed per row after fetching, so
// unlike the other sort keys it cannot be pushed down to the store: this
// sort reorders only the already-fetched page, not the global result set.
func SortByCustomersWithinPage(entries []LeaderboardEntry, descending bool) {
	sort.SliceStable(entries, func(i, j int) bool {
		if descending {
			return entries[i].Customers > entries[j].Customers
		}
		return entries[i].Customers < entries[j].Customers
	})
}
