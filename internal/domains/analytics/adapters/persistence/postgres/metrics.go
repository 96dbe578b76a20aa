package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	"github.com/laundromart/admin-api/internal/domains/analytics/ports"
)

var _ ports.MetricsReader = (*MetricsReader)(nil)

// revenueStatuses are the terminal order states that count toward revenue.
var revenueStatuses = []string{engine.StatusCompleted, engine.StatusDelivered}

// activeStatuses are the in-flight order states counted as active work.
var activeStatuses = []string{"PENDING", "CONFIRMED", "IN_PROGRESS", "READY_FOR_PICKUP", "OUT_FOR_DELIVERY"}

// MetricsReader runs the aggregate queries behind the dashboard and
// performance views directly against PostgreSQL.
type MetricsReader struct {
	db *gorm.DB
}

// NewMetricsReader wires a PostgreSQL-backed reader. Caller manages DB lifecycle.
func NewMetricsReader(db *gorm.DB) *MetricsReader {
	return &MetricsReader{db: db}
}

// CountActiveLaundries counts laundries with isActive set.
func (m *MetricsReader) CountActiveLaundries(ctx context.Context) (int64, error) {
	if err := m.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := m.db.WithContext(ctx).
		Table("laundries").
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

// CountActiveUsers counts active accounts excluding super admins.
func (m *MetricsReader) CountActiveUsers(ctx context.Context) (int64, error) {
	if err := m.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := m.db.WithContext(ctx).
		Table("users").
		Where("is_active = ? AND role <> ?", true, "SUPER_ADMIN").
		Count(&count).Error
	return count, err
}

// CountOrders counts orders within the filter bounds.
func (m *MetricsReader) CountOrders(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	if err := m.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := m.scopeOrders(ctx, filter).Count(&count).Error
	return count, err
}

// SumRevenue sums finalAmount over recognized-revenue statuses within the
// filter bounds.
func (m *MetricsReader) SumRevenue(ctx context.Context, filter ports.OrderFilter) (float64, error) {
	if err := m.ensureDB(); err != nil {
		return 0, err
	}
	filter.RevenueOnly = true
	var sum float64
	err := m.scopeOrders(ctx, filter).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// CountDistinctCustomers counts distinct customer ids among matching orders.
func (m *MetricsReader) CountDistinctCustomers(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	if err := m.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := m.scopeOrders(ctx, filter).
		Distinct("customer_id").
		Count(&count).Error
	return count, err
}

// AverageRating averages review ratings for a laundry; zero time bounds are
// unbounded. A laundry with no matching reviews averages 0.
func (m *MetricsReader) AverageRating(ctx context.Context, laundryID string, from, until time.Time) (float64, error) {
	if err := m.ensureDB(); err != nil {
		return 0, err
	}
	tx := m.db.WithContext(ctx).
		Table("reviews").
		Where("laundry_id = ?", laundryID)
	if !from.IsZero() {
		tx = tx.Where("created_at >= ?", from)
	}
	if !until.IsZero() {
		tx = tx.Where("created_at < ?", until)
	}
	var avg float64
	err := tx.Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error
	return avg, err
}

// ProductAggregates groups the order items of a laundry's recognized-revenue
// orders by product, unordered.
func (m *MetricsReader) ProductAggregates(ctx context.Context, laundryID string) ([]engine.ProductAggregate, error) {
	if err := m.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		ProductID     string
		TotalQuantity int64
		TotalRevenue  float64
		OrderCount    int64
	}
	err := m.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id, "+
			"COALESCE(SUM(order_items.quantity), 0) AS total_quantity, "+
			"COALESCE(SUM(order_items.total), 0) AS total_revenue, "+
			"COUNT(order_items.product_id) AS order_count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.laundry_id = ? AND orders.status IN ?", laundryID, revenueStatuses).
		Group("order_items.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	aggregates := make([]engine.ProductAggregate, 0, len(rows))
	for _, row := range rows {
		aggregates = append(aggregates, engine.ProductAggregate{
			ProductID:     row.ProductID,
			TotalQuantity: row.TotalQuantity,
			TotalRevenue:  row.TotalRevenue,
			OrderCount:    row.OrderCount,
		})
	}
	return aggregates, nil
}

// ProductDetails resolves catalog details for the given product ids.
func (m *MetricsReader) ProductDetails(ctx context.Context, productIDs []string) (map[string]ports.ProductInfo, error) {
	if err := m.ensureDB(); err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return map[string]ports.ProductInfo{}, nil
	}
	var rows []struct {
		ID       string
		Name     string
		Category string
		Price    float64
	}
	err := m.db.WithContext(ctx).
		Table("products").
		Select("id, name, category, price").
		Where("id IN ?", productIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	details := make(map[string]ports.ProductInfo, len(rows))
	for _, row := range rows {
		details[row.ID] = ports.ProductInfo{
			Name:     row.Name,
			Category: row.Category,
			Price:    row.Price,
		}
	}
	return details, nil
}

// scopeOrders applies the filter bounds to an orders query.
func (m *MetricsReader) scopeOrders(ctx context.Context, filter ports.OrderFilter) *gorm.DB {
	tx := m.db.WithContext(ctx).Table("orders")
	if filter.LaundryID != "" {
		tx = tx.Where("laundry_id = ?", filter.LaundryID)
	}
	if !filter.From.IsZero() {
		tx = tx.Where("created_at >= ?", filter.From)
	}
	if !filter.Until.IsZero() {
		tx = tx.Where("created_at < ?", filter.Until)
	}
	if filter.RevenueOnly {
		tx = tx.Where("status IN ?", revenueStatuses)
	}
	if filter.ActiveOnly {
		tx = tx.Where("status IN ?", activeStatuses)
	}
	return tx
}

func (m *MetricsReader) ensureDB() error {
	if m == nil || m.db == nil {
		return errors.New("postgres metrics reader not configured")
	}
	return nil
}
