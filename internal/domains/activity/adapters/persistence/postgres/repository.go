package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/laundromart/admin-api/internal/domains/activity/domain"
	"github.com/laundromart/admin-api/internal/domains/activity/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the append-only audit log in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// activityRecord maps one audit entry to a relational table. Rows are only
// ever inserted.
type activityRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	Type        string         `gorm:"column:type;type:varchar(64);index"`
	Title       string         `gorm:"column:title"`
	Description string         `gorm:"column:description"`
	LaundryID   string         `gorm:"column:laundry_id;size:64;index"`
	UserID      string         `gorm:"column:user_id;size:64;index"`
	OrderID     string         `gorm:"column:order_id;size:64;index"`
	Metadata    map[string]any `gorm:"column:metadata;serializer:json"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
}

func (activityRecord) TableName() string { return "activities" }

// Record appends one entry. A missing ID gets minted.
func (r *Repository) Record(ctx context.Context, entry domain.Activity) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	record := activityRecord{
		ID:          entry.ID,
		Type:        string(entry.Type),
		Title:       entry.Title,
		Description: entry.Description,
		LaundryID:   entry.LaundryID,
		UserID:      entry.UserID,
		OrderID:     entry.OrderID,
		Metadata:    entry.Metadata,
		CreatedAt:   entry.CreatedAt,
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

// RecentByLaundry returns the newest entries for a laundry with the acting
// user and related order joined on.
func (r *Repository) RecentByLaundry(ctx context.Context, laundryID string, limit int) ([]domain.FeedEntry, error) {
	return r.queryFeed(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("activities.laundry_id = ?", laundryID).Limit(limit)
	})
}

// TimelineByOrder returns every entry of one order, newest first.
func (r *Repository) TimelineByOrder(ctx context.Context, orderID string) ([]domain.FeedEntry, error) {
	return r.queryFeed(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("activities.order_id = ?", orderID)
	})
}

func (r *Repository) queryFeed(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.FeedEntry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		ID          string
		Type        string
		Title       string
		Description string
		LaundryID   string
		UserID      string
		OrderID     string
		Metadata    map[string]any `gorm:"serializer:json"`
		CreatedAt   time.Time

		UserName     string
		UserEmail    string
		UserRole     string
		OrderNumber  string
		CustomerName string
	}
	err := scope(r.db.WithContext(ctx).
		Table("activities").
		Select("activities.*, "+
			"users.name AS user_name, users.email AS user_email, users.role AS user_role, "+
			"orders.order_number AS order_number, customers.name AS customer_name").
		Joins("LEFT JOIN users ON users.id = activities.user_id").
		Joins("LEFT JOIN orders ON orders.id = activities.order_id").
		Joins("LEFT JOIN users AS customers ON customers.id = orders.customer_id").
		Order("activities.created_at DESC")).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]domain.FeedEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.FeedEntry{
			Activity: domain.Activity{
				ID:          row.ID,
				Type:        domain.Type(row.Type),
				Title:       row.Title,
				Description: row.Description,
				LaundryID:   row.LaundryID,
				UserID:      row.UserID,
				OrderID:     row.OrderID,
				Metadata:    row.Metadata,
				CreatedAt:   row.CreatedAt,
			},
		}
		if row.UserID != "" {
			entry.User = &domain.Actor{
				ID:    row.UserID,
				Name:  row.UserName,
				Email: row.UserEmail,
				Role:  row.UserRole,
			}
		}
		if row.OrderID != "" {
			entry.Order = &domain.OrderRef{
				OrderNumber:  row.OrderNumber,
				CustomerName: row.CustomerName,
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres activity repository not configured")
	}
	return nil
}
