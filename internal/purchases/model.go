package purchases

import (
	"errors"
	"time"
)

// Purchase is an immutable record of a retailer buying a quantity of a
// product at a point in time. PaymentAmount is computed from the product
// price when the purchase commits and never changes afterwards.
type Purchase struct {
	ID            int64     `json:"id" db:"id"`
	RetailerID    string    `json:"retailer_id" db:"retailer_id"`
	ProductID     int64     `json:"product_id" db:"product_id"`
	Quantity      int64     `json:"quantity" db:"quantity"`
	PaymentType   string    `json:"payment_type" db:"payment_type"`
	PaymentAmount float64   `json:"payment_amount" db:"payment_amount"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// HistoryRow is a retailer-facing view of one purchase joined to its
// product and farmer.
type HistoryRow struct {
	OrderID       int64   `json:"order_id" db:"order_id"`
	ProductName   string  `json:"product_name" db:"product_name"`
	Category      string  `json:"category" db:"category"`
	FarmerName    string  `json:"farmer_name" db:"farmer_name"`
	Quantity      int64   `json:"quantity" db:"quantity"`
	PaymentType   string  `json:"payment_type" db:"payment_type"`
	PaymentAmount float64 `json:"payment_amount" db:"payment_amount"`
	PurchaseDate  string  `json:"purchase_date" db:"purchase_date"`
}

var (
	// ErrInvalidQuantity indicates a non-positive purchase quantity.
	ErrInvalidQuantity = errors.New("purchases: quantity must be a positive integer")
	// ErrInsufficientStock indicates the purchase exceeds available quantity.
	ErrInsufficientStock = errors.New("purchases: insufficient stock")
	// ErrNoTransactions indicates the retailer has no purchases in the
	// requested window.
	ErrNoTransactions = errors.New("purchases: no transactions found")
)
