package analytics

import (
	"errors"
	"strconv"
)

// ProductHistoryEntry lists one product with its listing and update dates.
type ProductHistoryEntry struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	InStock     bool    `json:"in_stock"`
	ListedDate  string  `json:"listed_date"`
	LastUpdated string  `json:"last_updated"`
}

// SaleRow is one purchase of a farmer's product, flattened with the product
// columns the reports need.
type SaleRow struct {
	TransactionID int64   `json:"transaction_id" db:"transaction_id"`
	ProductID     int64   `json:"product_id" db:"product_id"`
	ProductName   string  `json:"product_name" db:"product_name"`
	Category      string  `json:"category" db:"category"`
	UnitPrice     float64 `json:"-" db:"unit_price"`
	QuantitySold  int64   `json:"quantity_sold" db:"quantity_sold"`
	PaymentType   string  `json:"payment_type" db:"payment_type"`
	PaymentAmount float64 `json:"payment_amount" db:"payment_amount"`
	SoldDate      string  `json:"sold_date" db:"sold_date"`
}

// Summary aggregates a farmer's whole sales history.
//
// Listed stock counts everything the farmer ever put on the market: what is
// on the shelf now plus everything sold to date, so present + sold == listed
// holds for every product at all times.
type Summary struct {
	TotalListedStock  int64            `json:"total_listed_stock"`
	TotalPresentStock int64            `json:"total_present_stock"`
	TotalRevenue      float64          `json:"total_revenue"`
	MostSoldCategory  *string          `json:"most_sold_category"`
	CategorySales     map[string]int64 `json:"category_sales"`
}

// ProfitRow compares one sale against the market rate for the product.
type ProfitRow struct {
	ProductName       string  `json:"product_name"`
	Category          string  `json:"category"`
	MarketRatePerUnit float64 `json:"market_rate_per_unit"`
	SoldPricePerUnit  float64 `json:"sold_price_per_unit"`
	QuantitySold      int64   `json:"quantity_sold"`
	TotalSoldPrice    float64 `json:"total_sold_price"`
	ProfitOrLoss      float64 `json:"profit_or_loss"`
	TransactionDate   string  `json:"transaction_date"`
}

// OptionalRate is a market-derived figure that may be unavailable. It
// marshals as a number when known and as the "N/A" sentinel otherwise,
// never as a numeric fallback.
type OptionalRate struct {
	Value float64
	Valid bool
}

// MarshalJSON renders the rate or the sentinel.
func (o OptionalRate) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.FormatFloat(round2(o.Value), 'f', -1, 64)), nil
}

// PurchaseAnalysisRow compares one retailer purchase against market rates.
type PurchaseAnalysisRow struct {
	OrderID                int64        `json:"order_id"`
	ProductName            string       `json:"product_name"`
	Category               string       `json:"category"`
	FarmerName             string       `json:"farmer_name"`
	QuantityBought         int64        `json:"quantity_bought"`
	PurchasePricePerUnit   float64      `json:"purchase_price_per_unit"`
	MarketPricePerUnit     OptionalRate `json:"market_price_per_unit"`
	PriceDifferencePerUnit OptionalRate `json:"price_difference_per_unit"`
	TotalPurchaseAmount    float64      `json:"total_purchase_amount"`
	PurchaseDate           string       `json:"purchase_date"`
}

// retailerPurchaseRow is the repository projection behind purchase analysis.
type retailerPurchaseRow struct {
	OrderID       int64
	ProductName   string
	Category      string
	FarmerName    string
	FarmerState   string
	Quantity      int64
	PaymentAmount float64
	PurchaseDate  string
}

var (
	// ErrRateNotFound indicates no market rate exists for the requested
	// (state, category, product) key.
	ErrRateNotFound = errors.New("analytics: market rate not found")
	// ErrNoTransactions indicates a query matched no purchase records.
	ErrNoTransactions = errors.New("analytics: no transactions found")
	// ErrInvalidDateRange indicates missing, unparsable or inverted report dates.
	ErrInvalidDateRange = errors.New("analytics: invalid date range")
	// ErrMissingQuery indicates a required query parameter was not supplied.
	ErrMissingQuery = errors.New("analytics: category and product_name are required")
)

func round2(v float64) float64 {
	return float64(int64(v*100+copysignHalf(v))) / 100
}

func copysignHalf(v float64) float64 {
	if v < 0 {
		return -0.5
	}
	return 0.5
}
