package purchases

// PurchaseRequest carries a retailer's buy order for one product.
type PurchaseRequest struct {
	RetailerID  string `json:"retailer_id" validate:"required,max=20"`
	Quantity    int64  `json:"quantity" validate:"required"`
	PaymentType string `json:"payment_type" validate:"required,max=50"`
}

// PurchaseResponse confirms a committed purchase.
type PurchaseResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Purchase Purchase `json:"purchase"`
}
