package admin

import (
	"encoding/json"

	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
)

const PageSize = 10

type ProductRow struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Inventory       int             `json:"inventory"`
	InventoryStatus string          `json:"inventory_status"`
	CollectionTitle string          `json:"collection_title"`
}

func (r ProductRow) MarshalJSON() ([]byte, error) {
	type alias ProductRow
	return json.Marshal(struct {
		alias
		UnitPrice utils.Money `json:"unit_price"`
	}{alias(r), utils.Money(r.UnitPrice)})
}

type ProductListParams struct {
	CollectionID *uint
	LowStock     bool
	Search       string
	Ordering     string
	Page         int
}

type CustomerRow struct {
	ID          uint   `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Membership  string `json:"membership"`
	OrdersCount int    `json:"orders_count"`
}

type CustomerListParams struct {
	Search string
	Page   int
}

type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
