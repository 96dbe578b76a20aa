// Package ports declares the boundary interfaces of the activity log.
package ports

import (
	"context"

	"github.com/laundromart/admin-api/internal/domains/activity/domain"
)

// Recorder appends entries to the audit log.
type Recorder interface {
	Record(ctx context.Context, entry domain.Activity) error
}

// Repository reads and appends audit log entries.
type Repository interface {
	Recorder
	RecentByLaundry(ctx context.Context, laundryID string, limit int) ([]domain.FeedEntry, error)
	TimelineByOrder(ctx context.Context, orderID string) ([]domain.FeedEntry, error)
}

// NoopRecorder discards entries; used where audit logging is optional.
var NoopRecorder Recorder = noopRecorder{}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, domain.Activity) error { return nil }
