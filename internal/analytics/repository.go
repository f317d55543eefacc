package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmbazaar/farmbazaar/internal/catalog"
)

// Repository reads the stored rows every analytics call recomputes from.
// There is no caching layer in front of it.
type Repository interface {
	FarmerProducts(ctx context.Context, farmerID int64) ([]catalog.Product, error)
	FarmerSales(ctx context.Context, farmerID int64) ([]SaleRow, error)
	ProductSales(ctx context.Context, farmerID int64, category, productName string) ([]SaleRow, error)
	SalesBetween(ctx context.Context, farmerID int64, from, to time.Time) ([]SaleRow, error)
	RetailerPurchases(ctx context.Context, retailerID string) ([]retailerPurchaseRow, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FarmerProducts(ctx context.Context, farmerID int64) ([]catalog.Product, error) {
	const query = `
		SELECT id, farmer_id, name, category, price, quantity, in_stock, created_at, updated_at
		FROM products WHERE farmer_id = $1
		ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("farmer products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.InStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const saleColumns = `
	pu.id, p.id, p.name, p.category, p.price, pu.quantity, pu.payment_type,
	pu.payment_amount, to_char(pu.created_at, 'YYYY-MM-DD')`

const saleJoins = `
	FROM purchases pu
	JOIN products p ON pu.product_id = p.id`

func (r *repository) FarmerSales(ctx context.Context, farmerID int64) ([]SaleRow, error) {
	query := `SELECT ` + saleColumns + saleJoins + `
		WHERE p.farmer_id = $1
		ORDER BY pu.created_at`
	rows, err := r.pool.Query(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("farmer sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

func (r *repository) ProductSales(ctx context.Context, farmerID int64, category, productName string) ([]SaleRow, error) {
	query := `SELECT ` + saleColumns + saleJoins + `
		WHERE p.farmer_id = $1 AND p.category = $2 AND p.name = $3
		ORDER BY pu.created_at`
	rows, err := r.pool.Query(ctx, query, farmerID, category, productName)
	if err != nil {
		return nil, fmt.Errorf("product sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

func (r *repository) SalesBetween(ctx context.Context, farmerID int64, from, to time.Time) ([]SaleRow, error) {
	query := `SELECT ` + saleColumns + saleJoins + `
		WHERE p.farmer_id = $1 AND pu.created_at >= $2 AND pu.created_at < $3
		ORDER BY pu.created_at`
	rows, err := r.pool.Query(ctx, query, farmerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales between: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

func (r *repository) RetailerPurchases(ctx context.Context, retailerID string) ([]retailerPurchaseRow, error) {
	const query = `
		SELECT pu.id, p.name, p.category, f.farmer_name, f.state, pu.quantity,
		       pu.payment_amount, to_char(pu.created_at, 'YYYY-MM-DD')
		FROM purchases pu
		JOIN products p ON pu.product_id = p.id
		JOIN farmers f ON p.farmer_id = f.id
		WHERE pu.retailer_id = $1
		ORDER BY pu.created_at`
	rows, err := r.pool.Query(ctx, query, retailerID)
	if err != nil {
		return nil, fmt.Errorf("retailer purchases: %w", err)
	}
	defer rows.Close()

	var out []retailerPurchaseRow
	for rows.Next() {
		var row retailerPurchaseRow
		err := rows.Scan(&row.OrderID, &row.ProductName, &row.Category, &row.FarmerName, &row.FarmerState, &row.Quantity, &row.PaymentAmount, &row.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("scan retailer purchase: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanSales(rows pgx.Rows) ([]SaleRow, error) {
	var out []SaleRow
	for rows.Next() {
		var s SaleRow
		err := rows.Scan(&s.TransactionID, &s.ProductID, &s.ProductName, &s.Category, &s.UnitPrice, &s.QuantitySold, &s.PaymentType, &s.PaymentAmount, &s.SoldDate)
		if err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
