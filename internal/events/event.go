package events

import (
	"encoding/json"
	"time"

	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
)

type OrderCreated struct {
	OrderID    uint            `json:"order_id"`
	CustomerID uint            `json:"customer_id"`
	PlacedAt   time.Time       `json:"placed_at"`
	Total      decimal.Decimal `json:"total"`
	Items      []Item          `json:"items"`
}

type Item struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (e OrderCreated) MarshalJSON() ([]byte, error) {
	type alias OrderCreated
	return json.Marshal(struct {
		alias
		Total utils.Money `json:"total"`
	}{alias(e), utils.Money(e.Total)})
}

func (i Item) MarshalJSON() ([]byte, error) {
	type alias Item
	return json.Marshal(struct {
		alias
		UnitPrice utils.Money `json:"unit_price"`
	}{alias(i), utils.Money(i.UnitPrice)})
}

func NewOrderCreated(o *order.Order) OrderCreated {
	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		items[i] = Item{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return OrderCreated{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		PlacedAt:   o.PlacedAt,
		Total:      o.Total(),
		Items:      items,
	}
}
