package cart

import (
	"encoding/json"
	"time"

	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartProduct struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (p CartProduct) MarshalJSON() ([]byte, error) {
	type alias CartProduct
	return json.Marshal(struct {
		alias
		UnitPrice utils.Money `json:"unit_price"`
	}{alias(p), utils.Money(p.UnitPrice)})
}

type CartItem struct {
	ID       uint        `json:"id"`
	CartID   uuid.UUID   `json:"-"`
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

// TotalPrice is quantity times the product's current unit price.
func (i CartItem) TotalPrice() decimal.Decimal {
	return i.Product.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i CartItem) MarshalJSON() ([]byte, error) {
	type alias CartItem
	return json.Marshal(struct {
		alias
		TotalPrice utils.Money `json:"total_price"`
	}{alias(i), utils.Money(i.TotalPrice())})
}

type Cart struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `json:"items"`
}

func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.TotalPrice())
	}
	return total
}

func (c Cart) MarshalJSON() ([]byte, error) {
	type alias Cart
	return json.Marshal(struct {
		alias
		TotalPrice utils.Money `json:"total_price"`
	}{alias(c), utils.Money(c.TotalPrice())})
}

type AddItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
