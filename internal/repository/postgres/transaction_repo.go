package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tranqh/finbot/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// CreateWithBalance inserts the transaction with its tag associations and
// applies the signed amount to the owner's cached balance, all in one
// database transaction. The row-level lock taken by the balance UPDATE
// serializes concurrent writers for the same user; writers for different
// users touch different rows and do not block each other.
func (r *TransactionRepository) CreateWithBalance(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var (
		id        int32
		createdAt pgtype.Timestamptz
	)
	err = tx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, recorded_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		pgtype.UUID{Bytes: transaction.UserID, Valid: true},
		string(transaction.Type),
		amount,
		pgtype.Timestamptz{Time: transaction.RecordedAt, Valid: true},
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, err
	}

	for _, tag := range transaction.Tags {
		if _, err := tx.Exec(ctx,
			`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2)`,
			id, tag.ID); err != nil {
			return nil, err
		}
	}

	delta, err := decimalToPgNumeric(transaction.SignedAmount())
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	cmd, err := tx.Exec(ctx,
		`UPDATE users SET balance = balance + $2, updated_at = now() WHERE id = $1`,
		pgtype.UUID{Bytes: transaction.UserID, Valid: true}, delta)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	created := *transaction
	created.ID = id
	created.CreatedAt = createdAt.Time
	return &created, nil
}

// SumByTypeInWindow sums amounts of the given type with recorded_at in
// [start, end)
func (r *TransactionRepository) SumByTypeInWindow(ctx context.Context, userID uuid.UUID, transactionType domain.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE user_id = $1 AND type = $2 AND recorded_at >= $3 AND recorded_at < $4`,
		pgtype.UUID{Bytes: userID, Valid: true},
		string(transactionType),
		pgtype.Timestamptz{Time: start, Valid: true},
		pgtype.Timestamptz{Time: end, Valid: true},
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

// SumByType is the full re-scan over all of the user's transactions
func (r *TransactionRepository) SumByType(ctx context.Context, userID uuid.UUID, transactionType domain.TransactionType) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE user_id = $1 AND type = $2`,
		pgtype.UUID{Bytes: userID, Valid: true},
		string(transactionType),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

// ListTaggedInWindow returns the user's transactions within [start, end) that
// carry at least one tag. The inner join drops untagged transactions, which
// never contribute to any bucket.
func (r *TransactionRepository) ListTaggedInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.type, t.amount, t.recorded_at, t.created_at, g.id, g.name, g.created_at
		 FROM transactions t
		 JOIN transaction_tags tt ON tt.transaction_id = t.id
		 JOIN tags g ON g.id = tt.tag_id
		 WHERE t.user_id = $1 AND t.recorded_at >= $2 AND t.recorded_at < $3
		 ORDER BY t.id, g.name`,
		pgtype.UUID{Bytes: userID, Valid: true},
		pgtype.Timestamptz{Time: start, Valid: true},
		pgtype.Timestamptz{Time: end, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		result  []*domain.Transaction
		current *domain.Transaction
	)
	for rows.Next() {
		var (
			id           int32
			txType       string
			amount       pgtype.Numeric
			recordedAt   pgtype.Timestamptz
			createdAt    pgtype.Timestamptz
			tagID        int32
			tagName      string
			tagCreatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &txType, &amount, &recordedAt, &createdAt, &tagID, &tagName, &tagCreatedAt); err != nil {
			return nil, err
		}
		if current == nil || current.ID != id {
			current = &domain.Transaction{
				ID:         id,
				UserID:     userID,
				Type:       domain.TransactionType(txType),
				Amount:     pgNumericToDecimal(amount),
				RecordedAt: recordedAt.Time,
				CreatedAt:  createdAt.Time,
			}
			result = append(result, current)
		}
		current.Tags = append(current.Tags, &domain.Tag{
			ID:        tagID,
			Name:      tagName,
			CreatedAt: tagCreatedAt.Time,
		})
	}
	return result, rows.Err()
}
