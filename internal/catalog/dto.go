package catalog

// CreateProductRequest carries a new listing.
type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Category string  `json:"category" validate:"required,max=80"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int64   `json:"quantity" validate:"gte=0"`
}

// UpdateProductRequest carries a partial update. Only fields present in the
// request body are applied.
type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,max=120"`
	Category *string  `json:"category,omitempty" validate:"omitempty,max=80"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int64   `json:"quantity,omitempty"`
	InStock  *bool    `json:"in_stock,omitempty"`
}

// MarkSoldOutResponse confirms a sold-out override.
type MarkSoldOutResponse struct {
	Success bool    `json:"success"`
	Product Product `json:"product"`
}
