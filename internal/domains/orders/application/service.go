package application

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	activitydomain "github.com/laundromart/admin-api/internal/domains/activity/domain"
	activityports "github.com/laundromart/admin-api/internal/domains/activity/ports"
	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	laundrydomain "github.com/laundromart/admin-api/internal/domains/laundries/domain"
	"github.com/laundromart/admin-api/internal/domains/orders/domain"
	"github.com/laundromart/admin-api/internal/domains/orders/ports"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

// LaundryFinder resolves a laundry before listing its orders. Satisfied by
// the laundries repository.
type LaundryFinder interface {
	GetByID(ctx context.Context, id string) (*laundrydomain.Laundry, error)
}

// Service serves the admin order views.
type Service struct {
	repo      ports.Repository
	laundries LaundryFinder
	activity  activityports.Repository
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

func NewService(repo ports.Repository, laundries LaundryFinder, activity activityports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		laundries: laundries,
		activity:  activity,
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

// LaundryOrdersResult is one page of a laundry's orders with the per-status
// breakdown across the whole laundry, not just the page.
type LaundryOrdersResult struct {
	Orders        []domain.Order
	Pagination    pagination.Envelope
	StatusSummary map[domain.Status]int64
}

// ListByLaundry pages through one laundry's orders. The laundry must exist.
func (s *Service) ListByLaundry(ctx context.Context, laundryID string, filter ports.Filter, page pagination.Params) (*LaundryOrdersResult, error) {
	if _, err := s.laundries.GetByID(ctx, laundryID); err != nil {
		return nil, err
	}
	filter.LaundryID = laundryID

	result := &LaundryOrdersResult{}
	var totalCount int64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Orders, totalCount, err = s.repo.List(ctx, filter, page)
		return err
	})
	g.Go(func() error {
		var err error
		result.StatusSummary, err = s.repo.StatusCounts(ctx, laundryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Pagination = pagination.NewEnvelope(page, totalCount)
	return result, nil
}

// Statistics aggregates the global order book.
type Statistics struct {
	StatusSummary map[domain.Status]ports.StatusStat
	TodayOrders   int64
	TotalRevenue  float64
}

// GlobalOrdersResult is one page of the platform-wide order list.
type GlobalOrdersResult struct {
	Orders     []domain.Order
	Pagination pagination.Envelope
	Statistics Statistics
}

// List pages through all orders on the platform. The statistics cover the
// whole order book regardless of the filter; TotalRevenue sums the final
// amounts of every status bucket.
func (s *Service) List(ctx context.Context, filter ports.Filter, page pagination.Params) (*GlobalOrdersResult, error) {
	result := &GlobalOrdersResult{}
	var totalCount int64
	todayStart := dayStart(s.now())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Orders, totalCount, err = s.repo.List(ctx, filter, page)
		return err
	})
	g.Go(func() error {
		stats, err := s.repo.StatusStats(ctx)
		if err != nil {
			return err
		}
		result.Statistics.StatusSummary = stats
		var revenue float64
		for _, stat := range stats {
			revenue += stat.Revenue
		}
		result.Statistics.TotalRevenue = engine.Round2(revenue)
		return nil
	})
	g.Go(func() error {
		var err error
		result.Statistics.TodayOrders, err = s.repo.CountSince(ctx, todayStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Pagination = pagination.NewEnvelope(page, totalCount)
	return result, nil
}

// DetailResult is the full order detail with its activity timeline.
type DetailResult struct {
	Order    *domain.Order
	Timeline []activitydomain.FeedEntry
}

// Get loads one order and its newest-first activity timeline.
func (s *Service) Get(ctx context.Context, orderID string) (*DetailResult, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	timeline, err := s.activity.TimelineByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &DetailResult{Order: order, Timeline: timeline}, nil
}

func dayStart(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
