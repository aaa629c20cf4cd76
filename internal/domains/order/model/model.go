package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartmodel "orderbot-backend/internal/domains/cart/model"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the full lifecycle graph. Terminal states have no
// outgoing edges.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := transitions[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// CanTransitionTo reports whether the graph allows moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// FormatOrderNumber renders the human-facing order number for a date and
// a per-date sequence value, e.g. ORD-20260830-0001.
func FormatOrderNumber(date time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", date.Format("20060102"), seq)
}

// Order is an immutable snapshot taken from the cart at checkout.
// Product edits after checkout never change it.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderNumber     string          `json:"order_number" db:"order_number"`
	CustomerID      uuid.UUID       `json:"customer_id" db:"customer_id"`
	DeliveryMethod  string          `json:"delivery_method" db:"delivery_method"`
	DeliveryAddress *string         `json:"delivery_address" db:"delivery_address"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee" db:"delivery_fee"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	Total           decimal.Decimal `json:"total" db:"total"`
	Status          Status          `json:"status" db:"status"`
	Note            *string         `json:"note" db:"note"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	Items []OrderItem `json:"items" db:"-"`
}

// OrderItem snapshots the product name in the customer's language along
// with the price paid.
type OrderItem struct {
	ID          uuid.UUID                  `json:"id" db:"id"`
	OrderID     uuid.UUID                  `json:"order_id" db:"order_id"`
	ProductName string                     `json:"product_name" db:"product_name"`
	Options     []cartmodel.SelectedOption `json:"options" db:"options"`
	Quantity    int                        `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal            `json:"unit_price" db:"unit_price"`
	TotalPrice  decimal.Decimal            `json:"total_price" db:"total_price"`
	CreatedAt   time.Time                  `json:"created_at" db:"created_at"`
}

// Detail is an order joined with customer columns for the admin listing
// and notifications.
type Detail struct {
	Order
	CustomerName     string `json:"customer_name" db:"customer_name"`
	CustomerPhone    string `json:"customer_phone" db:"customer_phone"`
	CustomerChatID   int64  `json:"customer_chat_id" db:"customer_chat_id"`
	CustomerLanguage string `json:"customer_language" db:"customer_language"`
}

// StatusChange is one row of the order's audit trail.
type StatusChange struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OrderID    uuid.UUID `json:"order_id" db:"order_id"`
	FromStatus *Status   `json:"from_status" db:"from_status"`
	ToStatus   Status    `json:"to_status" db:"to_status"`
	ChangedAt  time.Time `json:"changed_at" db:"changed_at"`
}

// Filter narrows the admin order listing.
type Filter struct {
	Status     *Status
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
}

// DailyTotals aggregates one day of non-cancelled orders.
type DailyTotals struct {
	Date       time.Time       `json:"date"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// Analytics is the admin business report over a date range. Counts and
// revenue exclude cancelled orders; StatusCounts includes them so the
// cancellation rate stays visible.
type Analytics struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	StatusCounts      map[string]int  `json:"status_counts"`
	DeliveryCounts    map[string]int  `json:"delivery_counts"`
	TopProducts       []ProductStat   `json:"top_products"`
}

// ProductStat is one row of the popular-products ranking.
type ProductStat struct {
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	Revenue       decimal.Decimal `json:"revenue"`
}
