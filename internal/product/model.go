package product

import (
	"encoding/json"
	"time"

	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
)

const lowInventoryThreshold = 10

var taxRate = decimal.NewFromFloat(1.1)

type Promotion struct {
	ID          uint            `json:"id"`
	Description string          `json:"description"`
	Discount    decimal.Decimal `json:"discount"`
}

type Product struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  *string         `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory"`
	LastUpdate   time.Time       `json:"last_update"`
	CollectionID uint            `json:"collection_id"`
	Promotions   []Promotion     `json:"promotions,omitempty"`
}

// PriceWithTax is the unit price with 10% tax, rounded to cents.
func (p Product) PriceWithTax() decimal.Decimal {
	return p.UnitPrice.Mul(taxRate).Round(2)
}

// MarshalJSON renders prices with two fraction digits and adds the taxed
// price.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		UnitPrice    utils.Money `json:"unit_price"`
		PriceWithTax utils.Money `json:"price_with_tax"`
	}{alias(p), utils.Money(p.UnitPrice), utils.Money(p.PriceWithTax())})
}

func (p Product) InventoryStatus() string {
	if p.Inventory < lowInventoryThreshold {
		return "Low"
	}
	return "Ok"
}

// ListParams filters and orders the product list. Ordering is one of
// title, unit_price, last_update, inventory, with a leading "-" for descending.
type ListParams struct {
	CollectionID *uint
	Search       *string
	PriceGTE     *decimal.Decimal
	PriceLTE     *decimal.Decimal
	InStock      *bool
	Ordering     string
	Page         int
	Limit        int
}

type ListResult struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

type CreateInput struct {
	Title        string          `json:"title" validate:"required,max=255"`
	Slug         string          `json:"slug" validate:"omitempty,max=255"`
	Description  *string         `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory" validate:"gte=0"`
	CollectionID uint            `json:"collection_id" validate:"required"`
}

type UpdateInput struct {
	Title        *string          `json:"title" validate:"omitempty,max=255"`
	Slug         *string          `json:"slug" validate:"omitempty,max=255"`
	Description  *string          `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Inventory    *int             `json:"inventory" validate:"omitempty,gte=0"`
	CollectionID *uint            `json:"collection_id"`
}
