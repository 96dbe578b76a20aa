package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	activitydomain "github.com/laundromart/admin-api/internal/domains/activity/domain"
	activityports "github.com/laundromart/admin-api/internal/domains/activity/ports"
	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	analyticsports "github.com/laundromart/admin-api/internal/domains/analytics/ports"
	"github.com/laundromart/admin-api/internal/domains/laundries/domain"
	"github.com/laundromart/admin-api/internal/domains/laundries/ports"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

// Service orchestrates the laundries bounded context use cases.
type Service struct {
	repo     ports.Repository
	orders   ports.OrderCanceler
	metrics  analyticsports.MetricsReader
	activity activityports.Repository
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the reference clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService wires the laundries service with its dependencies.
func NewService(
	repo ports.Repository,
	orders ports.OrderCanceler,
	metrics analyticsports.MetricsReader,
	activity activityports.Repository,
	opts ...Option,
) *Service {
	s := &Service{
		repo:     repo,
		orders:   orders,
		metrics:  metrics,
		activity: activity,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PerformanceSummary is the current-month rollup shown on the detail page.
type PerformanceSummary struct {
	MonthlyOrders  int64
	MonthlyRevenue float64
	TotalCustomers int64
	AverageRating  float64
}

// DetailResult is the full laundry detail view.
type DetailResult struct {
	Laundry        *domain.Laundry
	Products       []domain.Product
	RecentOrders   []domain.OrderDigest
	RecentReviews  []domain.Review
	RecentActivity []activitydomain.FeedEntry
	Counts         ports.Counts
	Performance    PerformanceSummary
}

// Get loads the bare laundry row.
func (s *Service) Get(ctx context.Context, laundryID string) (*domain.Laundry, error) {
	return s.repo.GetByID(ctx, laundryID)
}

// Detail loads a laundry with its satellite entities and performance
// summary. The independent reads are issued concurrently and awaited
// jointly; each query is its own snapshot.
func (s *Service) Detail(ctx context.Context, laundryID string) (*DetailResult, error) {
	laundry, err := s.repo.GetByID(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	monthStart := engine.MonthStart(s.now())
	result := &DetailResult{Laundry: laundry}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Products, err = s.repo.ActiveProducts(ctx, laundryID)
		return err
	})
	g.Go(func() error {
		var err error
		result.RecentOrders, err = s.repo.RecentOrders(ctx, laundryID, 5)
		return err
	})
	g.Go(func() error {
		var err error
		result.RecentReviews, err = s.repo.RecentReviews(ctx, laundryID, 5)
		return err
	})
	g.Go(func() error {
		var err error
		result.RecentActivity, err = s.activity.RecentByLaundry(ctx, laundryID, 10)
		return err
	})
	g.Go(func() error {
		var err error
		result.Counts, err = s.repo.Counts(ctx, laundryID)
		return err
	})
	g.Go(func() error {
		var err error
		result.Performance.MonthlyOrders, err = s.metrics.CountOrders(ctx, analyticsports.OrderFilter{LaundryID: laundryID, From: monthStart})
		return err
	})
	g.Go(func() error {
		revenue, err := s.metrics.SumRevenue(ctx, analyticsports.OrderFilter{LaundryID: laundryID, From: monthStart})
		result.Performance.MonthlyRevenue = engine.Round2(revenue)
		return err
	})
	g.Go(func() error {
		var err error
		result.Performance.TotalCustomers, err = s.metrics.CountDistinctCustomers(ctx, analyticsports.OrderFilter{LaundryID: laundryID})
		return err
	})
	g.Go(func() error {
		rating, err := s.metrics.AverageRating(ctx, laundryID, time.Time{}, time.Time{})
		result.Performance.AverageRating = engine.Round1(rating)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Patch applies a partial profile update and records it in the audit log.
// A failed audit write never fails the update.
func (s *Service) Patch(ctx context.Context, laundryID string, update domain.ProfileUpdate, actorID string) (*domain.Laundry, error) {
	updated, err := s.repo.UpdateProfile(ctx, laundryID, update)
	if err != nil {
		return nil, err
	}
	if err := s.activity.Record(ctx, activitydomain.Activity{
		Type:        activitydomain.TypeLaundryUpdated,
		Title:       "Laundry Updated",
		Description: fmt.Sprintf("Laundry %q details were updated by super admin", updated.Name),
		LaundryID:   laundryID,
		UserID:      actorID,
	}); err != nil {
		s.logger.Warn("failed to record laundry update activity",
			slog.String("laundry.id", laundryID),
			slog.String("error", err.Error()),
		)
	}
	return updated, nil
}

// SuspendResult reports what a suspension changed.
type SuspendResult struct {
	Laundry        *domain.Laundry
	CanceledOrders int64
}

// Suspend sets a laundry to SUSPENDED, cancels its pending and confirmed
// orders, and appends exactly one audit entry. Suspending a laundry that is
// already suspended is rejected and changes nothing.
func (s *Service) Suspend(ctx context.Context, laundryID, reason, actorID string) (*SuspendResult, error) {
	existing, err := s.repo.GetByID(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	if err := existing.CanSuspend(); err != nil {
		return nil, err
	}
	previousStatus := existing.Status

	suspended, err := s.repo.MarkSuspended(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	canceled, err := s.orders.CancelPendingByLaundry(ctx, laundryID)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = "No reason provided"
	}
	if err := s.activity.Record(ctx, activitydomain.Activity{
		Type:        activitydomain.TypeLaundrySuspended,
		Title:       "Laundry Suspended",
		Description: fmt.Sprintf("Laundry %q has been suspended. Reason: %s", existing.Name, reason),
		LaundryID:   laundryID,
		UserID:      actorID,
		Metadata: map[string]any{
			"reason":         reason,
			"suspendedBy":    actorID,
			"suspendedAt":    s.now().UTC().Format(time.RFC3339),
			"previousStatus": string(previousStatus),
		},
	}); err != nil {
		return nil, err
	}
	return &SuspendResult{Laundry: suspended, CanceledOrders: canceled}, nil
}

// ReviewsResult is one page of reviews plus the rating statistics.
type ReviewsResult struct {
	Reviews    []domain.Review
	Pagination pagination.Envelope
	Stats      engine.RatingSummary
}

// Reviews lists a laundry's visible reviews with filters and the dense
// rating distribution.
func (s *Service) Reviews(ctx context.Context, filter ports.ReviewFilter, page pagination.Params) (*ReviewsResult, error) {
	if _, err := s.repo.GetByID(ctx, filter.LaundryID); err != nil {
		return nil, err
	}
	filter.VisibleOnly = true

	result := &ReviewsResult{}
	var totalCount int64
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Reviews, totalCount, err = s.repo.ListReviews(ctx, filter, page)
		return err
	})
	g.Go(func() error {
		counts, err := s.repo.RatingCounts(ctx, filter.LaundryID)
		if err != nil {
			return err
		}
		result.Stats = engine.SummarizeFromCounts(counts)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Pagination = pagination.NewEnvelope(page, totalCount)
	return result, nil
}

// LeaderboardResult is one ranked page of laundries.
type LeaderboardResult struct {
	Entries    []engine.LeaderboardEntry
	Pagination pagination.Envelope
}

// Leaderboard ranks active laundries by the requested key. Sorting by the
// derived customer count happens after fetching and therefore reorders only
// the returned page, not the global result set.
func (s *Service) Leaderboard(ctx context.Context, query ports.LeaderboardQuery) (*LeaderboardResult, error) {
	seeds, totalCount, err := s.repo.LeaderboardPage(ctx, query)
	if err != nil {
		return nil, err
	}
	monthStart := engine.MonthStart(s.now())
	entries := make([]engine.LeaderboardEntry, 0, len(seeds))
	for _, seed := range seeds {
		metrics := engine.MonthToDate(seed.Orders, seed.Ratings, monthStart)
		entries = append(entries, engine.LeaderboardEntry{
			ID:           seed.Laundry.ID,
			Name:         seed.Laundry.Name,
			Address:      seed.Laundry.Address,
			City:         seed.Laundry.City,
			Status:       string(seed.Laundry.Status),
			OrdersMonth:  metrics.OrdersMonth,
			Customers:    metrics.Customers,
			Revenue:      metrics.Revenue,
			Rating:       metrics.Rating,
			TotalOrders:  seed.TotalOrders,
			TotalReviews: seed.TotalReviews,
			CreatedAt:    seed.Laundry.CreatedAt,
		})
	}
	if query.SortBy == engine.SortByCustomers {
		engine.SortByCustomersWithinPage(entries, query.Descending)
	}
	return &LeaderboardResult{
		Entries:    entries,
		Pagination: pagination.NewEnvelope(query.Page, totalCount),
	}, nil
}
