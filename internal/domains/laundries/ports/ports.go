// Package ports declares the boundary interfaces of the laundries context.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	"github.com/laundromart/admin-api/internal/domains/laundries/domain"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("laundry not found")

// ReviewFilter bounds a review listing.
type ReviewFilter struct {
	LaundryID   string
	Rating      int // 0 matches any rating
	From        time.Time
	Until       time.Time
	VisibleOnly bool
}

// Counts are the entity totals shown on the laundry detail page.
type Counts struct {
	Orders   int64
	Reviews  int64
	Products int64
}

// LeaderboardQuery selects and orders one leaderboard page.
type LeaderboardQuery struct {
	SortBy     string
	Descending bool
	Page       pagination.Params
}

// LeaderboardSeed is one active laundry with the raw rows its leaderboard
// metrics derive from.
type LeaderboardSeed struct {
	Laundry      domain.Laundry
	Orders       []engine.OrderSample
	Ratings      []int
	TotalOrders  int64
	TotalReviews int64
}

// Repository persists laundries and their satellite entities.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Laundry, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Laundry, error)
	// MarkSuspended sets status SUSPENDED and isActive false.
	MarkSuspended(ctx context.Context, id string) (*domain.Laundry, error)
	ActiveProducts(ctx context.Context, laundryID string) ([]domain.Product, error)
	RecentOrders(ctx context.Context, laundryID string, limit int) ([]domain.OrderDigest, error)
	RecentReviews(ctx context.Context, laundryID string, limit int) ([]domain.Review, error)
	ListReviews(ctx context.Context, filter ReviewFilter, page pagination.Params) ([]domain.Review, int64, error)
	// RatingCounts returns the sparse visible-review histogram for a laundry.
	RatingCounts(ctx context.Context, laundryID string) (map[int]int64, error)
	Counts(ctx context.Context, laundryID string) (Counts, error)
	// LeaderboardPage returns one page of active laundries ordered by the
	// query's sort key (customers falls back to id order, see the engine),
	// plus the total active count.
	LeaderboardPage(ctx context.Context, query LeaderboardQuery) ([]LeaderboardSeed, int64, error)
}

// OrderCanceler cancels the in-flight orders of a laundry; implemented by
// the orders context.
type OrderCanceler interface {
	CancelPendingByLaundry(ctx context.Context, laundryID string) (int64, error)
}
