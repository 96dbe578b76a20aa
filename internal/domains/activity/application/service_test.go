package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundromart/admin-api/internal/domains/activity/domain"
)

type fakeActivityRepo struct {
	entries []domain.FeedEntry
}

func (f *fakeActivityRepo) Record(_ context.Context, entry domain.Activity) error {
	f.entries = append(f.entries, domain.FeedEntry{Activity: entry})
	return nil
}

func (f *fakeActivityRepo) RecentByLaundry(_ context.Context, laundryID string, limit int) ([]domain.FeedEntry, error) {
	var matched []domain.FeedEntry
	for _, entry := range f.entries {
		if entry.LaundryID == laundryID {
			matched = append(matched, entry)
		}
	}
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeActivityRepo) TimelineByOrder(_ context.Context, orderID string) ([]domain.FeedEntry, error) {
	var matched []domain.FeedEntry
	for _, entry := range f.entries {
		if entry.OrderID == orderID {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func entryAt(laundryID string, ts time.Time) domain.FeedEntry {
	return domain.FeedEntry{Activity: domain.Activity{LaundryID: laundryID, CreatedAt: ts}}
}

func TestGroupByDay(t *testing.T) {
	day1 := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, time.July, 2, 9, 0, 0, 0, time.UTC)
	entries := []domain.FeedEntry{
		entryAt("l1", day1),
		entryAt("l1", day2),
		entryAt("l1", day1.Add(2*time.Hour)),
	}

	groups := GroupByDay(entries)
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-07-02", groups[0].Date)
	assert.Equal(t, "2025-07-01", groups[1].Date)
	assert.Len(t, groups[1].Activities, 2)
}

func TestLaundryFeed(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, domain.Activity{
		Type:      domain.TypeLaundrySuspended,
		LaundryID: "l1",
		CreatedAt: time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, svc.Record(ctx, domain.Activity{
		Type:      domain.TypeLaundryUpdated,
		LaundryID: "l2",
		CreatedAt: time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC),
	}))

	groups, total, err := svc.LaundryFeed(ctx, "l1", 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, groups, 1)
	assert.Equal(t, domain.TypeLaundrySuspended, groups[0].Activities[0].Type)
}
