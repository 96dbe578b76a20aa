package application

import (
	"context"
	"sort"

	"github.com/laundromart/admin-api/internal/domains/activity/domain"
	"github.com/laundromart/admin-api/internal/domains/activity/ports"
)

// Service exposes the activity feed use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the activity service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one entry to the audit log.
func (s *Service) Record(ctx context.Context, entry domain.Activity) error {
	return s.repo.Record(ctx, entry)
}

// DayGroup is one day of the laundry feed, newest day first.
type DayGroup struct {
	Date       string
	Activities []domain.FeedEntry
}

// LaundryFeed returns the most recent activities of a laundry grouped by
// calendar day.
func (s *Service) LaundryFeed(ctx context.Context, laundryID string, limit int) ([]DayGroup, int, error) {
	entries, err := s.repo.RecentByLaundry(ctx, laundryID, limit)
	if err != nil {
		return nil, 0, err
	}
	return GroupByDay(entries), len(entries), nil
}

// OrderTimeline returns every activity attached to an order, newest first.
func (s *Service) OrderTimeline(ctx context.Context, orderID string) ([]domain.FeedEntry, error) {
	return s.repo.TimelineByOrder(ctx, orderID)
}

// GroupByDay buckets feed entries by their creation date (YYYY-MM-DD),
// ordering groups newest day first. Entry order within a day is preserved.
func GroupByDay(entries []domain.FeedEntry) []DayGroup {
	byDate := make(map[string][]domain.FeedEntry)
	for _, entry := range entries {
		date := entry.CreatedAt.Format("2006-01-02")
		byDate[date] = append(byDate[date], entry)
	}
	groups := make([]DayGroup, 0, len(byDate))
	for date, dayEntries := range byDate {
		groups = append(groups, DayGroup{Date: date, Activities: dayEntries})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })
	return groups
}
