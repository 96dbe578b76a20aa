package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusInProgress     Status = "IN_PROGRESS"
	StatusReadyForPickup Status = "READY_FOR_PICKUP"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCompleted      Status = "COMPLETED"
	StatusCanceled       Status = "CANCELED"
	StatusRefunded       Status = "REFUNDED"
)

// AllStatuses lists every order status in lifecycle order.
var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusReadyForPickup,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCompleted,
	StatusCanceled,
	StatusRefunded,
}

// CancelableStatuses are the statuses force-canceled when a laundry is
// suspended.
var CancelableStatuses = []Status{StatusPending, StatusConfirmed}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, status := range AllStatuses {
		if candidate == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// RecognizesRevenue reports whether an order in this status counts toward
// revenue figures.
func (s Status) RecognizesRevenue() bool {
	return s == StatusCompleted || s == StatusDelivered
}

// NewOrderNumber mints a human-readable order reference.
func NewOrderNumber(at time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("ORD-%d-%s", at.Year(), suffix)
}

// Customer is the buyer snapshot embedded in order views.
type Customer struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	MemberSince time.Time
}

// LaundryRef is the laundry snapshot embedded in order views.
type LaundryRef struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	ZipCode string
}

// DeliveryAddress is where the order is delivered.
type DeliveryAddress struct {
	Street       string
	City         string
	State        string
	ZipCode      string
	Country      string
	Instructions string
}

// ItemProduct is the product snapshot on an order line.
type ItemProduct struct {
	ID          string
	Name        string
	Description string
	Category    string
	UnitPrice   float64
}

// Item is one line of an order.
type Item struct {
	ID       string
	Product  ItemProduct
	Quantity int
	Price    float64
	Total    float64
	Notes    string
}

// Order is the full order aggregate as served by the admin views.
type Order struct {
	ID            string
	OrderNumber   string
	CustomerID    string
	LaundryID     string
	Status        Status
	PaymentMethod string
	PaymentStatus string

	TotalAmount float64
	DeliveryFee float64
	Discount    float64
	FinalAmount float64

	Customer        Customer
	Laundry         LaundryRef
	DeliveryAddress DeliveryAddress
	Items           []Item

	Notes             string
	PickupDate        *time.Time
	DeliveryDate      *time.Time
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ItemCount is the number of lines on the order.
func (o *Order) ItemCount() int {
	return len(o.Items)
}
