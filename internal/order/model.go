package order

import (
	"encoding/json"
	"time"

	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "P"
	PaymentComplete PaymentStatus = "C"
	PaymentFailed   PaymentStatus = "F"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentComplete, PaymentFailed:
		return true
	}
	return false
}

type Order struct {
	ID            uint          `json:"id"`
	CustomerID    uint          `json:"customer_id"`
	PlacedAt      time.Time     `json:"placed_at"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Items         []OrderItem   `json:"items"`
}

// Total is derived from the price snapshot stored on each item.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		Total utils.Money `json:"total"`
	}{alias(o), utils.Money(o.Total())})
}

type OrderItem struct {
	ID           uint            `json:"id"`
	OrderID      uint            `json:"order_id"`
	ProductID    uint            `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// MarshalJSON renders the price snapshot and the line total with two
// fraction digits.
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type alias OrderItem
	return json.Marshal(struct {
		alias
		UnitPrice  utils.Money `json:"unit_price"`
		TotalPrice utils.Money `json:"total_price"`
	}{alias(i), utils.Money(i.UnitPrice), utils.Money(i.Subtotal())})
}

// CartLine is one cart item joined with its product's current price.
type CartLine struct {
	ProductID uint
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

type CheckoutParams struct {
	CartID uuid.UUID
	UserID uint
}

// Viewer is the identity an order read is performed for. Non-admin viewers
// only see orders of their own customer profile.
type Viewer struct {
	UserID  uint
	IsAdmin bool
}

type ListParams struct {
	Viewer        Viewer
	PaymentStatus *PaymentStatus
	Sort          string
	Page          int
	Limit         int
}

type ListResult struct {
	Items []Order `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
