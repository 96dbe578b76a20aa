package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	"github.com/laundromart/admin-api/internal/domains/analytics/ports"
	laundrydomain "github.com/laundromart/admin-api/internal/domains/laundries/domain"
	laundryports "github.com/laundromart/admin-api/internal/domains/laundries/ports"
)

// fakeMetrics computes every aggregate from an in-memory order/review set so
// the tests exercise the same filter combinations the store would see.
type fakeMetrics struct {
	activeLaundries int64
	activeUsers     int64
	orders          []engine.OrderSample
	reviews         []engine.ReviewSample
	aggregates      []engine.ProductAggregate
	details         map[string]ports.ProductInfo
}

var activeStatuses = map[string]bool{
	"PENDING": true, "CONFIRMED": true, "IN_PROGRESS": true,
	"READY_FOR_PICKUP": true, "OUT_FOR_DELIVERY": true,
}

func (f *fakeMetrics) selectOrders(filter ports.OrderFilter) []engine.OrderSample {
	var matched []engine.OrderSample
	for _, order := range f.orders {
		if !filter.From.IsZero() && order.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.Until.IsZero() && !order.CreatedAt.Before(filter.Until) {
			continue
		}
		if filter.RevenueOnly && !engine.IsRevenueStatus(order.Status) {
			continue
		}
		if filter.ActiveOnly && !activeStatuses[order.Status] {
			continue
		}
		matched = append(matched, order)
	}
	return matched
}

func (f *fakeMetrics) CountActiveLaundries(context.Context) (int64, error) {
	return f.activeLaundries, nil
}

func (f *fakeMetrics) CountActiveUsers(context.Context) (int64, error) {
	return f.activeUsers, nil
}

func (f *fakeMetrics) CountOrders(_ context.Context, filter ports.OrderFilter) (int64, error) {
	return int64(len(f.selectOrders(filter))), nil
}

func (f *fakeMetrics) SumRevenue(_ context.Context, filter ports.OrderFilter) (float64, error) {
	var sum float64
	for _, order := range f.selectOrders(filter) {
		if engine.IsRevenueStatus(order.Status) {
			sum += order.FinalAmount
		}
	}
	return sum, nil
}

func (f *fakeMetrics) CountDistinctCustomers(_ context.Context, filter ports.OrderFilter) (int64, error) {
	customers := map[string]struct{}{}
	for _, order := range f.selectOrders(filter) {
		customers[order.CustomerID] = struct{}{}
	}
	return int64(len(customers)), nil
}

func (f *fakeMetrics) AverageRating(_ context.Context, _ string, from, until time.Time) (float64, error) {
	var sum, count int64
	for _, review := range f.reviews {
		if !from.IsZero() && review.CreatedAt.Before(from) {
			continue
		}
		if !until.IsZero() && !review.CreatedAt.Before(until) {
			continue
		}
		sum += int64(review.Rating)
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (f *fakeMetrics) ProductAggregates(context.Context, string) ([]engine.ProductAggregate, error) {
	return f.aggregates, nil
}

func (f *fakeMetrics) ProductDetails(_ context.Context, ids []string) (map[string]ports.ProductInfo, error) {
	details := map[string]ports.ProductInfo{}
	for _, id := range ids {
		if info, ok := f.details[id]; ok {
			details[id] = info
		}
	}
	return details, nil
}

type fakeLaundryReader struct {
	laundry *laundrydomain.Laundry
	reviews []laundrydomain.Review
}

func (f *fakeLaundryReader) GetByID(_ context.Context, id string) (*laundrydomain.Laundry, error) {
	if f.laundry != nil && f.laundry.ID == id {
		return f.laundry, nil
	}
	return nil, laundryports.ErrNotFound
}

func (f *fakeLaundryReader) RecentReviews(_ context.Context, _ string, limit int) ([]laundrydomain.Review, error) {
	if len(f.reviews) > limit {
		return f.reviews[:limit], nil
	}
	return f.reviews, nil
}

var augustClock = func() time.Time {
	return time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
}

func TestOverview(t *testing.T) {
	august := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)
	metrics := &fakeMetrics{
		activeLaundries: 4,
		activeUsers:     20,
		orders: []engine.OrderSample{
			{CustomerID: "c1", Status: "COMPLETED", FinalAmount: 100, CreatedAt: august},
			{CustomerID: "c2", Status: "COMPLETED", FinalAmount: 50, CreatedAt: august},
			{CustomerID: "c3", Status: "PENDING", FinalAmount: 10, CreatedAt: august},
			{CustomerID: "c1", Status: "DELIVERED", FinalAmount: 100, CreatedAt: july},
			{CustomerID: "c4", Status: "CANCELED", FinalAmount: 30, CreatedAt: july},
		},
	}
	svc := NewService(metrics, &fakeLaundryReader{}, WithClock(augustClock))

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), overview.TotalLaundries)
	assert.Equal(t, int64(20), overview.TotalUsers)
	assert.Equal(t, int64(5), overview.TotalOrders)
	assert.Equal(t, 250.0, overview.PlatformRevenue)
	assert.Equal(t, int64(1), overview.ActiveOrders)

	assert.Equal(t, int64(3), overview.ThisMonth.Orders)
	assert.Equal(t, 150.0, overview.ThisMonth.Revenue)
	// 3 vs 2 orders and 150 vs 100 revenue month over month.
	assert.Equal(t, 50.0, overview.ThisMonth.OrderGrowth)
	assert.Equal(t, 50.0, overview.ThisMonth.RevenueGrowth)
}

func TestOverview_ZeroPreviousMonth(t *testing.T) {
	august := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)
	metrics := &fakeMetrics{
		orders: []engine.OrderSample{
			{CustomerID: "c1", Status: "COMPLETED", FinalAmount: 80, CreatedAt: august},
		},
	}
	svc := NewService(metrics, &fakeLaundryReader{}, WithClock(augustClock))

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, overview.ThisMonth.OrderGrowth)
	assert.Zero(t, overview.ThisMonth.RevenueGrowth)
}

func TestPerformance(t *testing.T) {
	august := time.Date(2025, time.August, 5, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	metrics := &fakeMetrics{
		orders: []engine.OrderSample{
			{CustomerID: "c1", Status: "COMPLETED", FinalAmount: 40, CreatedAt: august},
			{CustomerID: "c2", Status: "PENDING", FinalAmount: 15, CreatedAt: august},
			{CustomerID: "c1", Status: "DELIVERED", FinalAmount: 60, CreatedAt: june},
		},
		reviews: []engine.ReviewSample{
			{Rating: 5, CreatedAt: august},
			{Rating: 4, CreatedAt: august},
		},
		aggregates: []engine.ProductAggregate{
			{ProductID: "p1", TotalQuantity: 9, TotalRevenue: 80.005, OrderCount: 4},
			{ProductID: "p2", TotalQuantity: 3, TotalRevenue: 20, OrderCount: 2},
		},
		details: map[string]ports.ProductInfo{
			"p1": {Name: "Wash & Fold", Category: "WASHING"},
		},
	}
	reader := &fakeLaundryReader{
		laundry: &laundrydomain.Laundry{ID: "l1", Rating: 4.6},
		reviews: []laundrydomain.Review{{ID: "r1", Rating: 5}},
	}
	svc := NewService(metrics, reader, WithClock(augustClock))

	perf, err := svc.Performance(context.Background(), "l1")
	require.NoError(t, err)

	require.Len(t, perf.MonthlyData, 12)
	assert.Equal(t, "Sep 2024", perf.MonthlyData[0].Month)
	assert.Equal(t, "Aug 2025", perf.MonthlyData[11].Month)

	current := perf.MonthlyData[11]
	assert.Equal(t, int64(2), current.Orders)
	assert.Equal(t, 40.0, current.Revenue)
	assert.Equal(t, int64(1), current.CompletedOrders)
	assert.Equal(t, 4.5, current.AvgRating)
	assert.Equal(t, int64(2), current.Customers)
	assert.Equal(t, 50, current.CompletionRate)

	assert.Equal(t, int64(3), perf.Overview.TotalOrders)
	assert.Equal(t, 100.0, perf.Overview.TotalRevenue)
	// Completion rates: 50 (Aug) + 100 (Jun), averaged over 12 months.
	assert.Equal(t, 12.5, perf.Overview.AvgCompletionRate)
	assert.Equal(t, 4.6, perf.Overview.CurrentRating)

	require.Len(t, perf.TopProducts, 2)
	assert.Equal(t, "Wash & Fold", perf.TopProducts[0].Product)
	assert.Equal(t, 80.01, perf.TopProducts[0].TotalRevenue)
	assert.Equal(t, "Unknown Product", perf.TopProducts[1].Product)

	require.Len(t, perf.RecentReviews, 1)
}

func TestPerformance_UnknownLaundry(t *testing.T) {
	svc := NewService(&fakeMetrics{}, &fakeLaundryReader{}, WithClock(augustClock))
	_, err := svc.Performance(context.Background(), "ghost")
	require.ErrorIs(t, err, laundryports.ErrNotFound)
}
