package ports

import (
	"context"
	"errors"
	"time"

	"github.com/laundromart/admin-api/internal/domains/orders/domain"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("order not found")

// Filter narrows an order listing. Search matches order number, customer
// name and customer email case-insensitively; when LaundryID is empty the
// search additionally matches the laundry name. From/Until bound createdAt
// inclusively on both ends; zero values disable the bound.
type Filter struct {
	LaundryID string
	Status    domain.Status
	Search    string
	From      time.Time
	Until     time.Time
}

// StatusStat is the per-status aggregate of the global order list.
type StatusStat struct {
	Count   int64
	Revenue float64
}

// Repository is the order read/write store.
type Repository interface {
	// List returns newest-first orders matching the filter with the total
	// match count.
	List(ctx context.Context, filter Filter, page pagination.Params) ([]domain.Order, int64, error)
	// GetByID loads one order with customer, laundry, address and items.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// StatusCounts groups a laundry's orders by status.
	StatusCounts(ctx context.Context, laundryID string) (map[domain.Status]int64, error)
	// StatusStats groups all orders by status with summed final amounts.
	StatusStats(ctx context.Context) (map[domain.Status]StatusStat, error)
	// CountSince counts orders created at or after the given instant.
	CountSince(ctx context.Context, from time.Time) (int64, error)
	// CancelPendingByLaundry force-cancels a laundry's PENDING and
	// CONFIRMED orders, returning how many rows changed.
	CancelPendingByLaundry(ctx context.Context, laundryID string) (int64, error)
}
