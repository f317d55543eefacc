package farmers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmbazaar/farmbazaar/internal/platform/httpx"
)

// ErrNotFound indicates the farmer record does not exist.
var ErrNotFound = errors.New("farmer not found")

// Repository persists farmer accounts.
type Repository interface {
	Create(ctx context.Context, f Farmer) (int64, error)
	Get(ctx context.Context, id int64) (*Farmer, error)
	FindByMobile(ctx context.Context, mobile string) (*Farmer, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, f Farmer) (int64, error) {
	const query = `
		INSERT INTO farmers (farmer_name, mobile_number, password_hash, gender, state, city, aadhaar)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		f.FarmerName, f.MobileNumber, f.PasswordHash, f.Gender, f.State, f.City, f.Aadhaar,
	).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return 0, fmt.Errorf("mobile number or aadhaar already registered: %w", httpx.ErrDuplicate)
		}
		return 0, fmt.Errorf("create farmer: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Farmer, error) {
	const query = `
		SELECT id, farmer_name, mobile_number, password_hash, gender, state, city, aadhaar
		FROM farmers WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *repository) FindByMobile(ctx context.Context, mobile string) (*Farmer, error) {
	const query = `
		SELECT id, farmer_name, mobile_number, password_hash, gender, state, city, aadhaar
		FROM farmers WHERE mobile_number = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, mobile))
}

func (r *repository) scanOne(row pgx.Row) (*Farmer, error) {
	var f Farmer
	err := row.Scan(&f.ID, &f.FarmerName, &f.MobileNumber, &f.PasswordHash, &f.Gender, &f.State, &f.City, &f.Aadhaar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan farmer: %w", err)
	}
	return &f, nil
}
