package domain

import "time"

// Type classifies an audit log entry.
type Type string

const (
	TypeUserLogin        Type = "USER_LOGIN"
	TypeLaundryUpdated   Type = "LAUNDRY_UPDATED"
	TypeLaundrySuspended Type = "LAUNDRY_SUSPENDED"
	TypeOrderCreated     Type = "ORDER_CREATED"
	TypeOrderStatus      Type = "ORDER_STATUS_CHANGED"
)

// Activity is one append-only audit log entry. Entries are never updated or
// deleted once written; metadata is an opaque bag that is stored and echoed
// back but never queried structurally.
type Activity struct {
	ID          string
	Type        Type
	Title       string
	Description string
	LaundryID   string
	UserID      string
	OrderID     string
	Metadata    map[string]any
	CreatedAt   time.Time
}

// Actor is the optional user attached to a feed entry.
type Actor struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// OrderRef is the optional order attached to a feed entry.
type OrderRef struct {
	OrderNumber  string
	CustomerName string
}

// FeedEntry is an activity joined with its related user and order for the
// admin feed views.
type FeedEntry struct {
	Activity
	User  *Actor
	Order *OrderRef
}
