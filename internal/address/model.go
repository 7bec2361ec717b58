package address

type Address struct {
	ID         uint   `json:"id"`
	CustomerID uint   `json:"customer_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Zip        string `json:"zip"`
}

type CreateInput struct {
	Street string `json:"street" validate:"required,max=255"`
	City   string `json:"city" validate:"required,max=255"`
	Zip    string `json:"zip" validate:"required,max=255"`
}
