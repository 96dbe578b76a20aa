package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopN(t *testing.T) {
	aggregates := []ProductAggregate{
		{ProductID: "wash", TotalRevenue: 120},
		{ProductID: "dry-clean", TotalRevenue: 480},
		{ProductID: "iron", TotalRevenue: 60},
		{ProductID: "fold", TotalRevenue: 480},
		{ProductID: "stain", TotalRevenue: 200},
		{ProductID: "repair", TotalRevenue: 30},
	}

	top := TopN(aggregates, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "dry-clean", top[0].ProductID)
	// Ties keep the store's ordering: dry-clean came before fold.
	assert.Equal(t, "fold", top[1].ProductID)
	assert.Equal(t, "stain", top[2].ProductID)
	assert.Equal(t, "wash", top[3].ProductID)
	assert.Equal(t, "iron", top[4].ProductID)
}

func TestTopN_FewerThanN(t *testing.T) {
	top := TopN([]ProductAggregate{{ProductID: "wash", TotalRevenue: 10}}, 5)
	require.Len(t, top, 1)
}

func TestTopN_DoesNotMutateInput(t *testing.T) {
	aggregates := []ProductAggregate{
		{ProductID: "a", TotalRevenue: 1},
		{ProductID: "b", TotalRevenue: 2},
	}
	_ = TopN(aggregates, 1)
	assert.Equal(t, "a", aggregates[0].ProductID)
}

func TestMonthToDate(t *testing.T) {
	monthStart := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	august := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)

	orders := []OrderSample{
		{CustomerID: "c1", Status: StatusCompleted, FinalAmount: 50.004, CreatedAt: august},
		{CustomerID: "c2", Status: "PENDING", FinalAmount: 20, CreatedAt: august},
		{CustomerID: "c1", Status: StatusDelivered, FinalAmount: 30, CreatedAt: july},
	}
	metrics := MonthToDate(orders, []int{5, 4, 4}, monthStart)

	assert.Equal(t, int64(2), metrics.OrdersMonth)
	// Customers span all fetched orders, not just this month.
	assert.Equal(t, int64(2), metrics.Customers)
	assert.Equal(t, 50.0, metrics.Revenue)
	assert.Equal(t, 4.3, metrics.Rating)
}

func TestMonthToDate_NoReviews(t *testing.T) {
	metrics := MonthToDate(nil, nil, time.Now())
	assert.Equal(t, 0.0, metrics.Rating)
	assert.Equal(t, int64(0), metrics.Customers)
}

func TestSortByCustomersWithinPage(t *testing.T) {
	entries := []LeaderboardEntry{
		{ID: "a", Customers: 3},
		{ID: "b", Customers: 9},
		{ID: "c", Customers: 1},
	}
	SortByCustomersWithinPage(entries, true)
	assert.Equal(t, []string{"b", "a", "c"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})

	SortByCustomersWithinPage(entries, false)
	assert.Equal(t, []string{"c", "a", "b"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}
