package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a chat account known to the ledger. Balance is a cached projection
// of the user's transaction history, maintained by the ledger on every insert.
type User struct {
	ID        uuid.UUID       `json:"id"`
	Handle    string          `json:"handle"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByHandle(ctx context.Context, handle string) (*User, error)
	// CreateOrGetByHandle creates a user with a zero balance, or returns the
	// existing one. Exactly one row survives concurrent first-time creation.
	CreateOrGetByHandle(ctx context.Context, handle string) (*User, error)
	SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) (*User, error)
}
