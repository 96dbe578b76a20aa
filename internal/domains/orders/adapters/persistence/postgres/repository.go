package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/laundromart/admin-api/internal/domains/orders/domain"
	"github.com/laundromart/admin-api/internal/domains/orders/ports"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table. The delivery
// address is denormalized onto the order row; it is a point-in-time snapshot
// that must not change when the customer edits their address book.
type orderRecord struct {
	ID            string  `gorm:"primaryKey;column:id;size:64"`
	OrderNumber   string  `gorm:"column:order_number;uniqueIndex"`
	CustomerID    string  `gorm:"column:customer_id;size:64;index"`
	LaundryID     string  `gorm:"column:laundry_id;size:64;index"`
	Status        string  `gorm:"column:status;type:varchar(32);index"`
	PaymentMethod string  `gorm:"column:payment_method;type:varchar(32)"`
	PaymentStatus string  `gorm:"column:payment_status;type:varchar(32)"`
	TotalAmount   float64 `gorm:"column:total_amount"`
	DeliveryFee   float64 `gorm:"column:delivery_fee"`
	Discount      float64 `gorm:"column:discount"`
	FinalAmount   float64 `gorm:"column:final_amount"`

	AddressStreet       string `gorm:"column:address_street"`
	AddressCity         string `gorm:"column:address_city"`
	AddressState        string `gorm:"column:address_state"`
	AddressZipCode      string `gorm:"column:address_zip_code"`
	AddressCountry      string `gorm:"column:address_country"`
	AddressInstructions string `gorm:"column:address_instructions"`

	Notes             string     `gorm:"column:notes"`
	PickupDate        *time.Time `gorm:"column:pickup_date"`
	DeliveryDate      *time.Time `gorm:"column:delivery_date"`
	EstimatedDelivery *time.Time `gorm:"column:estimated_delivery"`
	CreatedAt         time.Time  `gorm:"column:created_at;index"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord maps one order line to a relational table.
type orderItemRecord struct {
	ID        string  `gorm:"primaryKey;column:id;size:64"`
	OrderID   string  `gorm:"column:order_id;size:64;index"`
	ProductID string  `gorm:"column:product_id;size:64;index"`
	Quantity  int     `gorm:"column:quantity"`
	Price     float64 `gorm:"column:price"`
	Total     float64 `gorm:"column:total"`
	Notes     string  `gorm:"column:notes"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// List returns newest-first orders matching the filter plus the total match
// count. Search is case-insensitive over order number and customer name and
// email; the platform-wide list (empty LaundryID) also matches laundry names.
func (r *Repository) List(ctx context.Context, filter ports.Filter, page pagination.Params) ([]domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Joins("LEFT JOIN users ON users.id = orders.customer_id").
			Joins("LEFT JOIN laundries ON laundries.id = orders.laundry_id")
		if filter.LaundryID != "" {
			tx = tx.Where("orders.laundry_id = ?", filter.LaundryID)
		}
		if filter.Status != "" {
			tx = tx.Where("orders.status = ?", string(filter.Status))
		}
		if !filter.From.IsZero() {
			tx = tx.Where("orders.created_at >= ?", filter.From)
		}
		if !filter.Until.IsZero() {
			tx = tx.Where("orders.created_at <= ?", filter.Until)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			if filter.LaundryID == "" {
				tx = tx.Where(
					"orders.order_number ILIKE ? OR users.name ILIKE ? OR users.email ILIKE ? OR laundries.name ILIKE ?",
					pattern, pattern, pattern, pattern)
			} else {
				tx = tx.Where(
					"orders.order_number ILIKE ? OR users.name ILIKE ? OR users.email ILIKE ?",
					pattern, pattern, pattern)
			}
		}
		return tx
	}

	var totalCount int64
	if err := scope(r.db.WithContext(ctx).Table("orders")).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var rows []orderRow
	err := scope(r.db.WithContext(ctx).Table("orders")).
		Select(orderRowColumns).
		Order("orders.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order := row.toDomain()
		items, err := r.itemsFor(ctx, order.ID)
		if err != nil {
			return nil, 0, err
		}
		order.Items = items
		orders = append(orders, *order)
	}
	return orders, totalCount, nil
}

// GetByID loads one order with customer, laundry, delivery address and items.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row orderRow
	result := r.db.WithContext(ctx).
		Table("orders").
		Select(orderRowColumns).
		Joins("LEFT JOIN users ON users.id = orders.customer_id").
		Joins("LEFT JOIN laundries ON laundries.id = orders.laundry_id").
		Where("orders.id = ?", id).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	order := row.toDomain()
	items, err := r.itemsFor(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// StatusCounts groups a laundry's orders by status.
func (r *Repository) StatusCounts(ctx context.Context, laundryID string) (map[domain.Status]int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("status, COUNT(*) AS count").
		Where("laundry_id = ?", laundryID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Status]int64, len(rows))
	for _, row := range rows {
		counts[domain.Status(row.Status)] = row.Count
	}
	return counts, nil
}

// StatusStats groups all orders by status with summed final amounts.
func (r *Repository) StatusStats(ctx context.Context) (map[domain.Status]ports.StatusStat, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		Status  string
		Count   int64
		Revenue float64
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("status, COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS revenue").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := make(map[domain.Status]ports.StatusStat, len(rows))
	for _, row := range rows {
		stats[domain.Status(row.Status)] = ports.StatusStat{Count: row.Count, Revenue: row.Revenue}
	}
	return stats, nil
}

// CountSince counts orders created at or after the given instant.
func (r *Repository) CountSince(ctx context.Context, from time.Time) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("created_at >= ?", from).
		Count(&count).Error
	return count, err
}

// CancelPendingByLaundry force-cancels a laundry's PENDING and CONFIRMED
// orders in one statement.
func (r *Repository) CancelPendingByLaundry(ctx context.Context, laundryID string) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	statuses := make([]string, len(domain.CancelableStatuses))
	for i, status := range domain.CancelableStatuses {
		statuses[i] = string(status)
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("laundry_id = ? AND status IN ?", laundryID, statuses).
		Updates(map[string]any{
			"status":     string(domain.StatusCanceled),
			"updated_at": gorm.Expr("NOW()"),
		})
	return result.RowsAffected, result.Error
}

// itemsFor loads an order's lines with the product snapshot joined on.
func (r *Repository) itemsFor(ctx context.Context, orderID string) ([]domain.Item, error) {
	var rows []struct {
		ID                 string
		ProductID          string
		Quantity           int
		Price              float64
		Total              float64
		Notes              string
		ProductName        string
		ProductDescription string
		ProductCategory    string
		ProductPrice       float64
	}
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.product_id, order_items.quantity, order_items.price, order_items.total, order_items.notes, " +
			"products.name AS product_name, products.description AS product_description, products.category AS product_category, products.price AS product_price").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.Item{
			ID: row.ID,
			Product: domain.ItemProduct{
				ID:          row.ProductID,
				Name:        row.ProductName,
				Description: row.ProductDescription,
				Category:    row.ProductCategory,
				UnitPrice:   row.ProductPrice,
			},
			Quantity: row.Quantity,
			Price:    row.Price,
			Total:    row.Total,
			Notes:    row.Notes,
		})
	}
	return items, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

// orderRowColumns selects the order with its customer and laundry snapshots.
const orderRowColumns = "orders.*, " +
	"users.name AS customer_name, users.email AS customer_email, users.phone AS customer_phone, users.created_at AS customer_created_at, " +
	"laundries.name AS laundry_name, laundries.email AS laundry_email, laundries.phone AS laundry_phone, " +
	"laundries.address AS laundry_address, laundries.city AS laundry_city, laundries.state AS laundry_state, laundries.zip_code AS laundry_zip_code"

// orderRow is the flat scan target of the order-with-relations join.
type orderRow struct {
	ID            string
	OrderNumber   string
	CustomerID    string
	LaundryID     string
	Status        string
	PaymentMethod string
	PaymentStatus string
	TotalAmount   float64
	DeliveryFee   float64
	Discount      float64
	FinalAmount   float64

	AddressStreet       string
	AddressCity         string
	AddressState        string
	AddressZipCode      string
	AddressCountry      string
	AddressInstructions string

	Notes             string
	PickupDate        *time.Time
	DeliveryDate      *time.Time
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	CustomerCreatedAt time.Time

	LaundryName    string
	LaundryEmail   string
	LaundryPhone   string
	LaundryAddress string
	LaundryCity    string
	LaundryState   string
	LaundryZipCode string
}

func (row orderRow) toDomain() *domain.Order {
	return &domain.Order{
		ID:            row.ID,
		OrderNumber:   row.OrderNumber,
		CustomerID:    row.CustomerID,
		LaundryID:     row.LaundryID,
		Status:        domain.Status(row.Status),
		PaymentMethod: row.PaymentMethod,
		PaymentStatus: row.PaymentStatus,
		TotalAmount:   row.TotalAmount,
		DeliveryFee:   row.DeliveryFee,
		Discount:      row.Discount,
		FinalAmount:   row.FinalAmount,
		Customer: domain.Customer{
			ID:          row.CustomerID,
			Name:        row.CustomerName,
			Email:       row.CustomerEmail,
			Phone:       row.CustomerPhone,
			MemberSince: row.CustomerCreatedAt,
		},
		Laundry: domain.LaundryRef{
			ID:      row.LaundryID,
			Name:    row.LaundryName,
			Email:   row.LaundryEmail,
			Phone:   row.LaundryPhone,
			Address: row.LaundryAddress,
			City:    row.LaundryCity,
			State:   row.LaundryState,
			ZipCode: row.LaundryZipCode,
		},
		DeliveryAddress: domain.DeliveryAddress{
			Street:       row.AddressStreet,
			City:         row.AddressCity,
			State:        row.AddressState,
			ZipCode:      row.AddressZipCode,
			Country:      row.AddressCountry,
			Instructions: row.AddressInstructions,
		},
		Notes:             row.Notes,
		PickupDate:        row.PickupDate,
		DeliveryDate:      row.DeliveryDate,
		EstimatedDelivery: row.EstimatedDelivery,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
