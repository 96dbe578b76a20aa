package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for all bounded contexts in one place so the
// adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&laundryRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&reviewRecord{},
		&activityRecord{},
	)
}

// User schema mirrors the identity Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:64"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Phone        string    `gorm:"column:phone"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(32);index"`
	IsActive     bool      `gorm:"column:is_active;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Laundry schema mirrors the laundries Postgres adapter.
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

// Product schema mirrors the laundries Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
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

// Order item schema mirrors the orders Postgres adapter.
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

// Review schema mirrors the laundries Postgres adapter.
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

// Activity schema mirrors the activity Postgres adapter.
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
