package catalog

import (
	"errors"
	"time"
)

// StatusFilter narrows product listings.
type StatusFilter string

const (
	// StatusAny disables filtering.
	StatusAny StatusFilter = ""
	// StatusActive selects in-stock products with remaining quantity.
	StatusActive StatusFilter = "active"
	// StatusSoldOut selects products flagged out of stock.
	StatusSoldOut StatusFilter = "soldout"
)

// Product is a priced, quantity-tracked listing owned by a farmer.
//
// InStock is derived from Quantity on every quantity mutation, but a farmer
// may force it false to pull a listing while stock remains.
type Product struct {
	ID        int64     `json:"id" db:"id"`
	FarmerID  int64     `json:"farmer_id" db:"farmer_id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int64     `json:"quantity" db:"quantity"`
	InStock   bool      `json:"in_stock" db:"in_stock"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AvailableProduct is a marketplace row shown to retailers browsing stock
// from farmers in their own state.
type AvailableProduct struct {
	ID          int64   `json:"id" db:"id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Category    string  `json:"category" db:"category"`
	Price       float64 `json:"price" db:"price"`
	Quantity    int64   `json:"quantity" db:"quantity"`
	FarmerName  string  `json:"farmer_name" db:"farmer_name"`
}

var (
	// ErrNotFound indicates the product does not exist or belongs to another farmer.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidPrice indicates a negative price.
	ErrInvalidPrice = errors.New("catalog: price must be >= 0")
	// ErrInvalidQuantity indicates a negative quantity.
	ErrInvalidQuantity = errors.New("catalog: quantity must be >= 0")
	// ErrInvalidStatus indicates an unknown listing filter.
	ErrInvalidStatus = errors.New("catalog: status must be active or soldout")
)
