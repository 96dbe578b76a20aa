package domain

import (
	"errors"
	"time"
)

// Status represents the lifecycle state of a laundry on the platform.
type Status string

const (
	StatusActive          Status = "ACTIVE"
	StatusInactive        Status = "INACTIVE"
	StatusSuspended       Status = "SUSPENDED"
	StatusPendingApproval Status = "PENDING_APPROVAL"
)

var (
	ErrAlreadySuspended = errors.New("laundry is already suspended")
)

// Owner is the account that operates a laundry.
type Owner struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Laundry is the aggregate managed by this context. Rating, TotalOrders and
// TotalRevenue are cached rollups maintained by the order/review write paths;
// the leaderboard sorts on them in SQL.
type Laundry struct {
	ID             string
	OwnerID        string
	Name           string
	Description    string
	Email          string
	Phone          string
	Address        string
	City           string
	State          string
	ZipCode        string
	Country        string
	ServiceTags    []string
	OperatingHours string
	Status         Status
	IsActive       bool
	Rating         float64
	TotalOrders    int64
	TotalRevenue   float64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Owner *Owner
}

// CanSuspend reports whether a suspension is a valid transition.
func (l *Laundry) CanSuspend() error {
	if l.Status == StatusSuspended {
		return ErrAlreadySuspended
	}
	return nil
}

// Product is a service item offered by a laundry.
type Product struct {
	ID          string
	LaundryID   string
	Name        string
	Description string
	Category    string
	Price       float64
	IsActive    bool
}

// Review is a customer rating of a laundry. Rating is always in [1,5].
type Review struct {
	ID        string
	LaundryID string
	Rating    int
	Comment   string
	IsVisible bool
	CreatedAt time.Time
	UpdatedAt time.Time

	CustomerID    string
	CustomerName  string
	CustomerEmail string
}

// OrderDigest is the slim order row shown on the laundry detail page.
type OrderDigest struct {
	ID            string
	OrderNumber   string
	Status        string
	FinalAmount   float64
	CustomerName  string
	CustomerEmail string
	CreatedAt     time.Time
}

// ProfileUpdate carries the patchable profile fields. Nil pointers leave the
// current value untouched.
type ProfileUpdate struct {
	Name           *string
	Description    *string
	Email          *string
	Phone          *string
	Address        *string
	City           *string
	State          *string
	ZipCode        *string
	Country        *string
	ServiceTags    *[]string
	OperatingHours *string
	Status         *Status
	IsActive       *bool
}

// Apply copies the set fields onto the laundry.
func (u ProfileUpdate) Apply(l *Laundry) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Email != nil {
		l.Email = *u.Email
	}
	if u.Phone != nil {
		l.Phone = *u.Phone
	}
	if u.Address != nil {
		l.Address = *u.Address
	}
	if u.City != nil {
		l.City = *u.City
	}
	if u.State != nil {
		l.State = *u.State
	}
	if u.ZipCode != nil {
		l.ZipCode = *u.ZipCode
	}
	if u.Country != nil {
		l.Country = *u.Country
	}
	if u.ServiceTags != nil {
		l.ServiceTags = append([]string{}, (*u.ServiceTags)...)
	}
	if u.OperatingHours != nil {
		l.OperatingHours = *u.OperatingHours
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.IsActive != nil {
		l.IsActive = *u.IsActive
	}
}
