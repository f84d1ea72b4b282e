package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tranqh/finbot/internal/domain"
)

const userColumns = `id, handle, balance, created_at, updated_at`

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		pgtype.UUID{Bytes: id, Valid: true})
	return scanUser(row)
}

// GetByHandle retrieves a user by their chat handle
func (r *UserRepository) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE handle = $1`, handle)
	return scanUser(row)
}

// CreateOrGetByHandle creates a user with a zero balance or returns the
// existing one. The unique constraint on handle guarantees a single surviving
// row; a concurrent insert loses the conflict and falls through to the fetch.
func (r *UserRepository) CreateOrGetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (handle) VALUES ($1)
		 ON CONFLICT (handle) DO NOTHING
		 RETURNING `+userColumns, handle)
	user, err := scanUser(row)
	if err == domain.ErrUserNotFound {
		// Conflict: another writer created the row first.
		return r.GetByHandle(ctx, handle)
	}
	return user, err
}

// SetBalance overwrites the cached balance, used to repair drift against the
// full re-scan.
func (r *UserRepository) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) (*domain.User, error) {
	amount, err := decimalToPgNumeric(balance)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET balance = $2, updated_at = now() WHERE id = $1
		 RETURNING `+userColumns,
		pgtype.UUID{Bytes: id, Valid: true}, amount)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id        pgtype.UUID
		handle    string
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &handle, &balance, &createdAt, &updatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &domain.User{
		ID:        uuid.UUID(id.Bytes),
		Handle:    handle,
		Balance:   pgNumericToDecimal(balance),
		CreatedAt: createdAt.Time,
		UpdatedAt: updatedAt.Time,
	}, nil
}
