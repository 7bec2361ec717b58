package collection

type Collection struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	FeaturedProductID *uint  `json:"featured_product_id"`
	ProductsCount     int    `json:"products_count"`
}

type ListParams struct {
	Search *string
	Page   int
	Limit  int
}

type Input struct {
	Title             string `json:"title" validate:"required,max=255"`
	FeaturedProductID *uint  `json:"featured_product_id"`
}
