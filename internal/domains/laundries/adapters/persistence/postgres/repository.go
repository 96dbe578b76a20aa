package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	"github.com/laundromart/admin-api/internal/domains/laundries/domain"
	"github.com/laundromart/admin-api/internal/domains/laundries/ports"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists laundries and their satellite entities in PostgreSQL
// using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// laundryRecord maps the laundry aggregate to a relational table. The
// rating/total columns are maintained by the order and review write paths so
// the leaderboard can sort on them in SQL.
type laundryRecord struct {
	ID             string         `gorm:"primaryKey;column:id;size:64"`
	OwnerID        string         `gorm:"column:owner_id;size:64;index"`
	Name           string         `gorm:"column:name"`
	Description    string         `gorm:"column:description"`
	Email          string         `gorm:"column:email"`
	Phone          string         `gorm:"column:phone"`
	Address        string         `gorm:"column:address"`
	City           string         `gorm:"column:city;index"`
	State          string         `gorm:"column:state"`
	ZipCode        string         `gorm:"column:zip_code"`
	Country        string         `gorm:"column:country"`
	ServiceTags    pq.StringArray `gorm:"column:service_tags;type:text[]"`
	OperatingHours string         `gorm:"column:operating_hours"`
	Status         string         `gorm:"column:status;type:varchar(32);index"`
	IsActive       bool           `gorm:"column:is_active;index"`
	Rating         float64        `gorm:"column:rating"`
	TotalOrders    int64          `gorm:"column:total_orders"`
	TotalRevenue   float64        `gorm:"column:total_revenue"`
	CreatedAt      time.Time      `gorm:"column:created_at;index"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
}

func (laundryRecord) TableName() string { return "laundries" }

// productRecord maps a laundry's service item to a relational table.
type productRecord struct {
	ID          string  `gorm:"primaryKey;column:id;size:64"`
	LaundryID   string  `gorm:"column:laundry_id;size:64;index"`
	Name        string  `gorm:"column:name"`
	Description string  `gorm:"column:description"`
	Category    string  `gorm:"column:category;index"`
	Price       float64 `gorm:"column:price"`
	IsActive    bool    `gorm:"column:is_active;index"`
}

func (productRecord) TableName() string { return "products" }

// reviewRecord maps a customer review to a relational table.
type reviewRecord struct {
	ID         string    `gorm:"primaryKey;column:id;size:64"`
	LaundryID  string    `gorm:"column:laundry_id;size:64;index"`
	CustomerID string    `gorm:"column:customer_id;size:64;index"`
	Rating     int       `gorm:"column:rating;index"`
	Comment    string    `gorm:"column:comment"`
	IsVisible  bool      `gorm:"column:is_visible;index"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (reviewRecord) TableName() string { return "reviews" }

// GetByID fetches a laundry with its owner joined on.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Laundry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record laundryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	laundry := record.toDomain()

	var owner struct {
		ID        string
		Name      string
		Email     string
		Phone     string
		CreatedAt time.Time
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, name, email, phone, created_at").
		Where("id = ?", record.OwnerID).
		Take(&owner).Error
	if err == nil {
		laundry.Owner = &domain.Owner{
			ID:        owner.ID,
			Name:      owner.Name,
			Email:     owner.Email,
			Phone:     owner.Phone,
			CreatedAt: owner.CreatedAt,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return laundry, nil
}

// UpdateProfile applies a partial profile update and returns the fresh row.
func (r *Repository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Laundry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	assignments := profileAssignments(update)
	if len(assignments) > 0 {
		assignments["updated_at"] = gorm.Expr("NOW()")
		result := r.db.WithContext(ctx).
			Model(&laundryRecord{}).
			Where("id = ?", id).
			Updates(assignments)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ports.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// MarkSuspended sets status SUSPENDED and deactivates the laundry.
func (r *Repository) MarkSuspended(ctx context.Context, id string) (*domain.Laundry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).
		Model(&laundryRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(domain.StatusSuspended),
			"is_active":  false,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// ActiveProducts lists a laundry's active service items.
func (r *Repository) ActiveProducts(ctx context.Context, laundryID string) ([]domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	err := r.db.WithContext(ctx).
		Where("laundry_id = ? AND is_active = ?", laundryID, true).
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, domain.Product{
			ID:          record.ID,
			LaundryID:   record.LaundryID,
			Name:        record.Name,
			Description: record.Description,
			Category:    record.Category,
			Price:       record.Price,
			IsActive:    record.IsActive,
		})
	}
	return products, nil
}

// RecentOrders returns the laundry's newest orders with the customer joined.
func (r *Repository) RecentOrders(ctx context.Context, laundryID string, limit int) ([]domain.OrderDigest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		ID            string
		OrderNumber   string
		Status        string
		FinalAmount   float64
		CustomerName  string
		CustomerEmail string
		CreatedAt     time.Time
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.order_number, orders.status, orders.final_amount, users.name AS customer_name, users.email AS customer_email, orders.created_at").
		Joins("LEFT JOIN users ON users.id = orders.customer_id").
		Where("orders.laundry_id = ?", laundryID).
		Order("orders.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	digests := make([]domain.OrderDigest, 0, len(rows))
	for _, row := range rows {
		digests = append(digests, domain.OrderDigest{
			ID:            row.ID,
			OrderNumber:   row.OrderNumber,
			Status:        row.Status,
			FinalAmount:   row.FinalAmount,
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
			CreatedAt:     row.CreatedAt,
		})
	}
	return digests, nil
}

// RecentReviews returns the laundry's newest reviews with the customer joined.
func (r *Repository) RecentReviews(ctx context.Context, laundryID string, limit int) ([]domain.Review, error) {
	return r.queryReviews(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("reviews.laundry_id = ?", laundryID).Limit(limit)
	})
}

// ListReviews pages through reviews matching the filter, newest first.
func (r *Repository) ListReviews(ctx context.Context, filter ports.ReviewFilter, page pagination.Params) ([]domain.Review, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("reviews.laundry_id = ?", filter.LaundryID)
		if filter.VisibleOnly {
			tx = tx.Where("reviews.is_visible = ?", true)
		}
		if filter.Rating != 0 {
			tx = tx.Where("reviews.rating = ?", filter.Rating)
		}
		if !filter.From.IsZero() {
			tx = tx.Where("reviews.created_at >= ?", filter.From)
		}
		if !filter.Until.IsZero() {
			tx = tx.Where("reviews.created_at <= ?", filter.Until)
		}
		return tx
	}

	var totalCount int64
	if err := scope(r.db.WithContext(ctx).Table("reviews")).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	reviews, err := r.queryReviews(ctx, func(tx *gorm.DB) *gorm.DB {
		return scope(tx).Offset(page.Offset()).Limit(page.Limit)
	})
	if err != nil {
		return nil, 0, err
	}
	return reviews, totalCount, nil
}

// RatingCounts returns the sparse visible-review histogram for a laundry.
func (r *Repository) RatingCounts(ctx context.Context, laundryID string) (map[int]int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		Rating int
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("rating, COUNT(*) AS count").
		Where("laundry_id = ? AND is_visible = ?", laundryID, true).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}

// Counts returns the entity totals for the laundry detail page.
func (r *Repository) Counts(ctx context.Context, laundryID string) (ports.Counts, error) {
	if err := r.ensureDB(); err != nil {
		return ports.Counts{}, err
	}
	var counts ports.Counts
	tx := r.db.WithContext(ctx)
	if err := tx.Table("orders").Where("laundry_id = ?", laundryID).Count(&counts.Orders).Error; err != nil {
		return ports.Counts{}, err
	}
	if err := tx.Table("reviews").Where("laundry_id = ?", laundryID).Count(&counts.Reviews).Error; err != nil {
		return ports.Counts{}, err
	}
	if err := tx.Table("products").Where("laundry_id = ?", laundryID).Count(&counts.Products).Error; err != nil {
		return ports.Counts{}, err
	}
	return counts, nil
}

// LeaderboardPage returns one page of active laundries ordered by the sort
// key, with the raw order and rating rows their metrics derive from. The
// customers key cannot be sorted in SQL, so those pages come back in id
// order for the caller to reorder.
func (r *Repository) LeaderboardPage(ctx context.Context, query ports.LeaderboardQuery) ([]ports.LeaderboardSeed, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	tx := r.db.WithContext(ctx)

	var totalCount int64
	if err := tx.Model(&laundryRecord{}).Where("is_active = ?", true).Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if query.Descending {
		direction = "DESC"
	}
	orderBy := "id ASC"
	switch query.SortBy {
	case engine.SortByOrdersMonth:
		orderBy = "total_orders " + direction
	case engine.SortByRevenue:
		orderBy = "total_revenue " + direction
	case engine.SortByRating:
		orderBy = "rating " + direction
	}

	var records []laundryRecord
	err := tx.Where("is_active = ?", true).
		Order(orderBy).
		Offset(query.Page.Offset()).
		Limit(query.Page.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	seeds := make([]ports.LeaderboardSeed, 0, len(records))
	for _, record := range records {
		seed := ports.LeaderboardSeed{Laundry: *record.toDomain()}

		var orders []struct {
			CustomerID  string
			Status      string
			FinalAmount float64
			CreatedAt   time.Time
		}
		err := tx.Table("orders").
			Select("customer_id, status, final_amount, created_at").
			Where("laundry_id = ?", record.ID).
			Scan(&orders).Error
		if err != nil {
			return nil, 0, err
		}
		seed.Orders = make([]engine.OrderSample, 0, len(orders))
		for _, order := range orders {
			seed.Orders = append(seed.Orders, engine.OrderSample{
				CustomerID:  order.CustomerID,
				Status:      order.Status,
				FinalAmount: order.FinalAmount,
				CreatedAt:   order.CreatedAt,
			})
		}
		seed.TotalOrders = int64(len(orders))

		// Leaderboard ratings span all reviews, hidden ones included; only
		// the review listing and histogram filter on visibility.
		var ratings []int
		err = tx.Table("reviews").
			Where("laundry_id = ?", record.ID).
			Pluck("rating", &ratings).Error
		if err != nil {
			return nil, 0, err
		}
		seed.Ratings = ratings
		seed.TotalReviews = int64(len(ratings))

		seeds = append(seeds, seed)
	}
	return seeds, totalCount, nil
}

// queryReviews runs the shared review-with-customer join, newest first.
func (r *Repository) queryReviews(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []struct {
		ID            string
		LaundryID     string
		CustomerID    string
		Rating        int
		Comment       string
		IsVisible     bool
		CreatedAt     time.Time
		UpdatedAt     time.Time
		CustomerName  string
		CustomerEmail string
	}
	err := scope(r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, users.name AS customer_name, users.email AS customer_email").
		Joins("LEFT JOIN users ON users.id = reviews.customer_id").
		Order("reviews.created_at DESC")).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, domain.Review{
			ID:            row.ID,
			LaundryID:     row.LaundryID,
			Rating:        row.Rating,
			Comment:       row.Comment,
			IsVisible:     row.IsVisible,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
			CustomerID:    row.CustomerID,
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
		})
	}
	return reviews, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres laundry repository not configured")
	}
	return nil
}

// profileAssignments converts the set pointer fields to column assignments.
func profileAssignments(update domain.ProfileUpdate) map[string]any {
	assignments := map[string]any{}
	if update.Name != nil {
		assignments["name"] = *update.Name
	}
	if update.Description != nil {
		assignments["description"] = *update.Description
	}
	if update.Email != nil {
		assignments["email"] = *update.Email
	}
	if update.Phone != nil {
		assignments["phone"] = *update.Phone
	}
	if update.Address != nil {
		assignments["address"] = *update.Address
	}
	if update.City != nil {
		assignments["city"] = *update.City
	}
	if update.State != nil {
		assignments["state"] = *update.State
	}
	if update.ZipCode != nil {
		assignments["zip_code"] = *update.ZipCode
	}
	if update.Country != nil {
		assignments["country"] = *update.Country
	}
	if update.ServiceTags != nil {
		assignments["service_tags"] = pq.StringArray(*update.ServiceTags)
	}
	if update.OperatingHours != nil {
		assignments["operating_hours"] = *update.OperatingHours
	}
	if update.Status != nil {
		assignments["status"] = string(*update.Status)
	}
	if update.IsActive != nil {
		assignments["is_active"] = *update.IsActive
	}
	return assignments
}

func (r laundryRecord) toDomain() *domain.Laundry {
	return &domain.Laundry{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Name:           r.Name,
		Description:    r.Description,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		Country:        r.Country,
		ServiceTags:    append([]string{}, r.ServiceTags...),
		OperatingHours: r.OperatingHours,
		Status:         domain.Status(r.Status),
		IsActive:       r.IsActive,
		Rating:         r.Rating,
		TotalOrders:    r.TotalOrders,
		TotalRevenue:   r.TotalRevenue,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
