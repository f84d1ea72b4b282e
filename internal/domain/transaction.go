package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is an immutable ledger entry. Amount is always positive; the
// type alone encodes direction. RecordedAt is the aggregation key.
type Transaction struct {
	ID         int32           `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedAt time.Time       `json:"recordedAt"`
	Tags       []*Tag          `json:"tags,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// SignedAmount returns the amount with the direction applied: positive for
// income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

type TransactionRepository interface {
	// CreateWithBalance inserts the transaction with its tag associations and
	// applies the signed amount to the owner's balance in a single atomic unit.
	CreateWithBalance(ctx context.Context, transaction *Transaction) (*Transaction, error)
	// SumByTypeInWindow sums amounts of the given type with RecordedAt in
	// [start, end). Missing data yields zero.
	SumByTypeInWindow(ctx context.Context, userID uuid.UUID, transactionType TransactionType, start, end time.Time) (decimal.Decimal, error)
	// SumByType is the full re-scan over all of the user's transactions, used
	// to validate and repair the cached balance.
	SumByType(ctx context.Context, userID uuid.UUID, transactionType TransactionType) (decimal.Decimal, error)
	// ListTaggedInWindow returns the user's transactions with RecordedAt in
	// [start, end) that have at least one tag, tags populated.
	ListTaggedInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*Transaction, error)
}
