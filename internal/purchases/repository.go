package purchases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmbazaar/farmbazaar/internal/catalog"
	"github.com/farmbazaar/farmbazaar/internal/platform/db"
)

// TxRepository exposes the operations that must commit as one unit.
type TxRepository interface {
	// DeductStock atomically decrements a product's quantity and re-derives
	// its in_stock flag, guarded by quantity >= qty. It returns the unit
	// price read in the same statement. ErrInsufficientStock is returned
	// when the guard rejects the decrement.
	DeductStock(ctx context.Context, productID, qty int64) (price float64, err error)
	InsertPurchase(ctx context.Context, p Purchase) (*Purchase, error)
}

// Repository persists purchases.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	GetProduct(ctx context.Context, productID int64) (*catalog.Product, error)
	History(ctx context.Context, retailerID string) ([]HistoryRow, error)
	HistoryBetween(ctx context.Context, retailerID string, from, to time.Time) ([]HistoryRow, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

func (r *repository) GetProduct(ctx context.Context, productID int64) (*catalog.Product, error) {
	const query = `
		SELECT id, farmer_id, name, category, price, quantity, in_stock, created_at, updated_at
		FROM products WHERE id = $1`
	var p catalog.Product
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.FarmerID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (t *txRepo) DeductStock(ctx context.Context, productID, qty int64) (float64, error) {
	const query = `
		UPDATE products
		SET quantity = quantity - $2,
		    in_stock = quantity - $2 > 0,
		    updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING price`
	var price float64
	err := t.tx.QueryRow(ctx, query, productID, qty).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrInsufficientStock
		}
		return 0, fmt.Errorf("deduct stock: %w", err)
	}
	return price, nil
}

func (t *txRepo) InsertPurchase(ctx context.Context, p Purchase) (*Purchase, error) {
	const query = `
		INSERT INTO purchases (retailer_id, product_id, quantity, payment_type, payment_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := t.tx.QueryRow(ctx, query, p.RetailerID, p.ProductID, p.Quantity, p.PaymentType, p.PaymentAmount).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert purchase: %w", err)
	}
	return &p, nil
}

const historyColumns = `
	pu.id, p.name, p.category, f.farmer_name, pu.quantity, pu.payment_type,
	pu.payment_amount, to_char(pu.created_at, 'YYYY-MM-DD')`

const historyJoins = `
	FROM purchases pu
	JOIN products p ON pu.product_id = p.id
	JOIN farmers f ON p.farmer_id = f.id`

func (r *repository) History(ctx context.Context, retailerID string) ([]HistoryRow, error) {
	query := `SELECT ` + historyColumns + historyJoins + `
		WHERE pu.retailer_id = $1
		ORDER BY pu.created_at DESC`
	rows, err := r.pool.Query(ctx, query, retailerID)
	if err != nil {
		return nil, fmt.Errorf("retailer history: %w", err)
	}
	defer rows.Close()
	return scanHistory(rows)
}

func (r *repository) HistoryBetween(ctx context.Context, retailerID string, from, to time.Time) ([]HistoryRow, error) {
	query := `SELECT ` + historyColumns + historyJoins + `
		WHERE pu.retailer_id = $1 AND pu.created_at >= $2 AND pu.created_at < $3
		ORDER BY pu.created_at DESC`
	rows, err := r.pool.Query(ctx, query, retailerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("retailer history between: %w", err)
	}
	defer rows.Close()
	return scanHistory(rows)
}

func scanHistory(rows pgx.Rows) ([]HistoryRow, error) {
	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		err := rows.Scan(&h.OrderID, &h.ProductName, &h.Category, &h.FarmerName, &h.Quantity, &h.PaymentType, &h.PaymentAmount, &h.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
