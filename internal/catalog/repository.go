package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists product listings.
type Repository interface {
	Create(ctx context.Context, p Product) (*Product, error)
	GetOwned(ctx context.Context, productID, farmerID int64) (*Product, error)
	Update(ctx context.Context, p Product) (*Product, error)
	List(ctx context.Context, farmerID int64, filter StatusFilter) ([]Product, error)
	AvailableInState(ctx context.Context, state string) ([]AvailableProduct, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, farmer_id, name, category, price, quantity, in_stock, created_at, updated_at`

func (r *repository) Create(ctx context.Context, p Product) (*Product, error) {
	const query = `
		INSERT INTO products (farmer_id, name, category, price, quantity, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns
	return scanProduct(r.pool.QueryRow(ctx, query, p.FarmerID, p.Name, p.Category, p.Price, p.Quantity, p.InStock))
}

func (r *repository) GetOwned(ctx context.Context, productID, farmerID int64) (*Product, error) {
	const query = `
		SELECT ` + productColumns + `
		FROM products WHERE id = $1 AND farmer_id = $2`
	return scanProduct(r.pool.QueryRow(ctx, query, productID, farmerID))
}

func (r *repository) Update(ctx context.Context, p Product) (*Product, error) {
	const query = `
		UPDATE products
		SET name = $3, category = $4, price = $5, quantity = $6, in_stock = $7, updated_at = now()
		WHERE id = $1 AND farmer_id = $2
		RETURNING ` + productColumns
	return scanProduct(r.pool.QueryRow(ctx, query, p.ID, p.FarmerID, p.Name, p.Category, p.Price, p.Quantity, p.InStock))
}

func (r *repository) List(ctx context.Context, farmerID int64, filter StatusFilter) ([]Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE farmer_id = $1`
	switch filter {
	case StatusActive:
		query += ` AND in_stock AND quantity > 0`
	case StatusSoldOut:
		query += ` AND NOT in_stock`
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.InStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) AvailableInState(ctx context.Context, state string) ([]AvailableProduct, error) {
	const query = `
		SELECT p.id, p.name, p.category, p.price, p.quantity, f.farmer_name
		FROM products p
		JOIN farmers f ON p.farmer_id = f.id
		WHERE f.state = $1 AND p.in_stock
		ORDER BY p.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, state)
	if err != nil {
		return nil, fmt.Errorf("available products: %w", err)
	}
	defer rows.Close()

	items := []AvailableProduct{}
	for rows.Next() {
		var a AvailableProduct
		if err := rows.Scan(&a.ID, &a.ProductName, &a.Category, &a.Price, &a.Quantity, &a.FarmerName); err != nil {
			return nil, fmt.Errorf("scan available product: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.FarmerID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.InStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
