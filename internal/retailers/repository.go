package retailers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmbazaar/farmbazaar/internal/platform/httpx"
)

// ErrNotFound indicates the retailer record does not exist.
var ErrNotFound = errors.New("retailer not found")

// Repository persists retailer accounts.
type Repository interface {
	Create(ctx context.Context, rt Retailer) error
	Get(ctx context.Context, aadhaar string) (*Retailer, error)
	FindByMobile(ctx context.Context, mobile string) (*Retailer, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, rt Retailer) error {
	const query = `
		INSERT INTO retailers (aadhaar, enterprise_name, owner_name, mobile_number, password_hash, state, city, gstin, pan)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		rt.Aadhaar, rt.EnterpriseName, rt.OwnerName, rt.MobileNumber, rt.PasswordHash, rt.State, rt.City, rt.GSTIN, rt.PAN,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return fmt.Errorf("aadhaar or mobile number already registered: %w", httpx.ErrDuplicate)
		}
		return fmt.Errorf("create retailer: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, aadhaar string) (*Retailer, error) {
	const query = `
		SELECT aadhaar, enterprise_name, owner_name, mobile_number, password_hash, state, city, gstin, pan
		FROM retailers WHERE aadhaar = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, aadhaar))
}

func (r *repository) FindByMobile(ctx context.Context, mobile string) (*Retailer, error) {
	const query = `
		SELECT aadhaar, enterprise_name, owner_name, mobile_number, password_hash, state, city, gstin, pan
		FROM retailers WHERE mobile_number = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, mobile))
}

func (r *repository) scanOne(row pgx.Row) (*Retailer, error) {
	var rt Retailer
	err := row.Scan(&rt.Aadhaar, &rt.EnterpriseName, &rt.OwnerName, &rt.MobileNumber, &rt.PasswordHash, &rt.State, &rt.City, &rt.GSTIN, &rt.PAN)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan retailer: %w", err)
	}
	return &rt, nil
}
