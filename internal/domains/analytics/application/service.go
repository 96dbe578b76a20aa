package application

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	"github.com/laundromart/admin-api/internal/domains/analytics/ports"
	laundrydomain "github.com/laundromart/admin-api/internal/domains/laundries/domain"
)

// performanceWindowMonths is the width of the per-laundry performance series.
const performanceWindowMonths = 12

// topProductCount is how many products the performance view ranks.
const topProductCount = 5

// LaundryReader is the slice of the laundries store the analytics views
// need: existence checks plus the recent-review strip on the performance
// page.
type LaundryReader interface {
	GetByID(ctx context.Context, id string) (*laundrydomain.Laundry, error)
	RecentReviews(ctx context.Context, laundryID string, limit int) ([]laundrydomain.Review, error)
}

// Service computes the dashboard overview and the per-laundry performance
// report. All persistence goes through MetricsReader; the derivations are
// done by the engine package.
type Service struct {
	metrics   ports.MetricsReader
	laundries LaundryReader
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock overrides the reference clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

var _ ports.Service = (*Service)(nil)

func NewService(metrics ports.MetricsReader, laundries LaundryReader, opts ...Option) *Service {
	s := &Service{
		metrics:   metrics,
		laundries: laundries,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Overview aggregates the whole platform: active laundries, active non-admin
// users, the order book, recognized revenue, and a current-month snapshot
// compared against the previous calendar month. A previous month with no
// orders (or no revenue) yields 0% growth rather than a division blowup.
func (s *Service) Overview(ctx context.Context) (*ports.Overview, error) {
	now := s.now()
	monthStart := engine.MonthStart(now)
	prevMonthStart := engine.PreviousMonthStart(now)

	var (
		overview         ports.Overview
		thisMonthRevenue float64
		lastMonthOrders  int64
		lastMonthRevenue float64
		platformRevenue  float64
	)
	thisMonth := ports.OrderFilter{From: monthStart}
	lastMonth := ports.OrderFilter{From: prevMonthStart, Until: monthStart}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview.TotalLaundries, err = s.metrics.CountActiveLaundries(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		overview.TotalUsers, err = s.metrics.CountActiveUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		overview.TotalOrders, err = s.metrics.CountOrders(ctx, ports.OrderFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		platformRevenue, err = s.metrics.SumRevenue(ctx, ports.OrderFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		overview.ActiveOrders, err = s.metrics.CountOrders(ctx, ports.OrderFilter{ActiveOnly: true})
		return err
	})
	g.Go(func() error {
		var err error
		overview.ThisMonth.Orders, err = s.metrics.CountOrders(ctx, thisMonth)
		return err
	})
	g.Go(func() error {
		var err error
		thisMonthRevenue, err = s.metrics.SumRevenue(ctx, thisMonth)
		return err
	})
	g.Go(func() error {
		var err error
		lastMonthOrders, err = s.metrics.CountOrders(ctx, lastMonth)
		return err
	})
	g.Go(func() error {
		var err error
		lastMonthRevenue, err = s.metrics.SumRevenue(ctx, lastMonth)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview.PlatformRevenue = engine.Round2(platformRevenue)
	overview.ThisMonth.Revenue = engine.Round2(thisMonthRevenue)
	overview.ThisMonth.OrderGrowth = engine.Growth(float64(overview.ThisMonth.Orders), float64(lastMonthOrders))
	overview.ThisMonth.RevenueGrowth = engine.Growth(thisMonthRevenue, lastMonthRevenue)
	return &overview, nil
}

// Performance builds the trailing 12-month series for a laundry, ranks its
// five best-selling products by revenue, and attaches the ten most recent
// reviews. Each month's five aggregates are fetched concurrently over the
// same bucket bounds.
func (s *Service) Performance(ctx context.Context, laundryID string) (*ports.Performance, error) {
	laundry, err := s.laundries.GetByID(ctx, laundryID)
	if err != nil {
		return nil, err
	}

	buckets := engine.MonthWindow(s.now(), performanceWindowMonths)
	points := make([]engine.MonthlyPoint, len(buckets))
	result := &ports.Performance{}

	g, ctx := errgroup.WithContext(ctx)
	for i, bucket := range buckets {
		i, bucket := i, bucket
		g.Go(func() error {
			totals, err := s.bucketTotals(ctx, laundryID, bucket)
			if err != nil {
				return err
			}
			points[i] = engine.NewMonthlyPoint(bucket, totals)
			return nil
		})
	}
	g.Go(func() error {
		var err error
		result.TopProducts, err = s.topProducts(ctx, laundryID)
		return err
	})
	g.Go(func() error {
		var err error
		result.RecentReviews, err = s.laundries.RecentReviews(ctx, laundryID, 10)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	series := engine.Summarize(points)
	result.MonthlyData = points
	result.Overview = ports.PerformanceOverview{
		TotalOrders:       series.TotalOrders,
		TotalRevenue:      series.TotalRevenue,
		AvgCompletionRate: series.AvgCompletionRate,
		CurrentRating:     laundry.Rating,
	}
	return result, nil
}

// bucketTotals fans out the five per-month aggregates over identical bounds.
func (s *Service) bucketTotals(ctx context.Context, laundryID string, bucket engine.MonthBucket) (engine.BucketTotals, error) {
	var totals engine.BucketTotals
	inBucket := ports.OrderFilter{
		LaundryID: laundryID,
		From:      bucket.Start,
		Until:     bucket.NextStart(),
	}
	revenueInBucket := inBucket
	revenueInBucket.RevenueOnly = true

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals.Orders, err = s.metrics.CountOrders(ctx, inBucket)
		return err
	})
	g.Go(func() error {
		var err error
		totals.Revenue, err = s.metrics.SumRevenue(ctx, inBucket)
		return err
	})
	g.Go(func() error {
		var err error
		totals.CompletedOrders, err = s.metrics.CountOrders(ctx, revenueInBucket)
		return err
	})
	g.Go(func() error {
		var err error
		totals.AvgRating, err = s.metrics.AverageRating(ctx, laundryID, bucket.Start, bucket.NextStart())
		return err
	})
	g.Go(func() error {
		var err error
		totals.Customers, err = s.metrics.CountDistinctCustomers(ctx, inBucket)
		return err
	})
	if err := g.Wait(); err != nil {
		return engine.BucketTotals{}, err
	}
	return totals, nil
}

// topProducts ranks the laundry's products by summed revenue and joins the
// catalog details on. Products missing from the catalog keep a placeholder
// name rather than dropping the row.
func (s *Service) topProducts(ctx context.Context, laundryID string) ([]ports.TopProduct, error) {
	aggregates, err := s.metrics.ProductAggregates(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	top := engine.TopN(aggregates, topProductCount)
	if len(top) == 0 {
		return nil, nil
	}

	ids := make([]string, len(top))
	for i, aggregate := range top {
		ids[i] = aggregate.ProductID
	}
	details, err := s.metrics.ProductDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make([]ports.TopProduct, len(top))
	for i, aggregate := range top {
		product := ports.TopProduct{
			Product:       "Unknown Product",
			Category:      "Unknown",
			TotalQuantity: aggregate.TotalQuantity,
			TotalRevenue:  engine.Round2(aggregate.TotalRevenue),
			OrderCount:    aggregate.OrderCount,
		}
		if info, ok := details[aggregate.ProductID]; ok {
			product.Product = info.Name
			product.Category = info.Category
		}
		products[i] = product
	}
	return products, nil
}
