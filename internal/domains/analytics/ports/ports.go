// Package ports declares the read-side interfaces behind the analytics
// views. Every method is one bounded aggregate query; implementations must
// be safe for concurrent use because callers fan queries out per request.
package ports

import (
	"context"
	"time"

	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	laundrydomain "github.com/laundromart/admin-api/internal/domains/laundries/domain"
)

// OrderFilter bounds an order aggregate query. Zero time bounds are
// unbounded; Until is exclusive when set.
type OrderFilter struct {
	LaundryID   string
	From        time.Time
	Until       time.Time
	RevenueOnly bool
	ActiveOnly  bool
}

// ProductInfo is the catalog detail joined onto a product aggregate.
type ProductInfo struct {
	Name     string
	Category string
	Price    float64
}

// MetricsReader executes the aggregate queries behind the dashboard and
// performance views. Each call is its own snapshot; two calls made
// milliseconds apart can observe different committed states.
type MetricsReader interface {
	CountActiveLaundries(ctx context.Context) (int64, error)
	// CountActiveUsers counts active accounts excluding super admins.
	CountActiveUsers(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context, filter OrderFilter) (int64, error)
	// SumRevenue sums finalAmount over recognized-revenue statuses within
	// the filter bounds.
	SumRevenue(ctx context.Context, filter OrderFilter) (float64, error)
	CountDistinctCustomers(ctx context.Context, filter OrderFilter) (int64, error)
	// AverageRating averages review ratings for a laundry; zero time bounds
	// are unbounded.
	AverageRating(ctx context.Context, laundryID string, from, until time.Time) (float64, error)
	// ProductAggregates groups order items of recognized-revenue orders by
	// product, unordered.
	ProductAggregates(ctx context.Context, laundryID string) ([]engine.ProductAggregate, error)
	ProductDetails(ctx context.Context, productIDs []string) (map[string]ProductInfo, error)
}

// MonthSnapshot is the current-month block of the dashboard with growth
// against the previous calendar month.
type MonthSnapshot struct {
	Orders        int64
	Revenue       float64
	OrderGrowth   float64
	RevenueGrowth float64
}

// Overview is the platform-wide dashboard headline.
type Overview struct {
	TotalLaundries  int64
	TotalUsers      int64
	TotalOrders     int64
	PlatformRevenue float64
	ActiveOrders    int64
	ThisMonth       MonthSnapshot
}

// TopProduct is one ranked product with its catalog details joined on.
type TopProduct struct {
	Product       string
	Category      string
	TotalQuantity int64
	TotalRevenue  float64
	OrderCount    int64
}

// PerformanceOverview is the headline block of the performance report.
type PerformanceOverview struct {
	TotalOrders       int64
	TotalRevenue      float64
	AvgCompletionRate float64
	CurrentRating     float64
}

// Performance is the trailing 12-month report for one laundry.
type Performance struct {
	Overview      PerformanceOverview
	MonthlyData   []engine.MonthlyPoint
	TopProducts   []TopProduct
	RecentReviews []laundrydomain.Review
}

// Service is the analytics read model consumed by the HTTP layer.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	Performance(ctx context.Context, laundryID string) (*Performance, error)
}
