package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tranqh/finbot/internal/domain"
)

// LedgerService records income and expense transactions and maintains each
// user's cached balance
type LedgerService struct {
	transactionRepo domain.TransactionRepository
	userRepo        domain.UserRepository
	tagService      *TagService
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(transactionRepo domain.TransactionRepository, userRepo domain.UserRepository, tagService *TagService) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		tagService:      tagService,
	}
}

// Record validates and persists a transaction for the user, resolving tags
// (creating unseen ones) and applying the amount to the user's balance in the
// same atomic store operation. rawAmount comes straight from the command text;
// anything that does not parse to a finite number > 0 fails with
// ErrInvalidAmount.
func (s *LedgerService) Record(ctx context.Context, user *domain.User, transactionType domain.TransactionType, rawAmount string, tagNames []string) (*domain.Transaction, error) {
	if !transactionType.Valid() {
		return nil, domain.ErrInvalidType
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rawAmount))
	if err != nil || !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	tags, err := s.tagService.ResolveAll(ctx, tagNames)
	if err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		UserID:     user.ID,
		Type:       transactionType,
		Amount:     amount,
		RecordedAt: time.Now().UTC(),
		Tags:       tags,
	}
	return s.transactionRepo.CreateWithBalance(ctx, transaction)
}

// Balance returns the user's current cached balance
func (s *LedgerService) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

// RecomputeBalance re-derives the balance from a full re-scan of the user's
// transactions and overwrites the cached value. The result must always match
// the incrementally maintained balance; the full scan exists to validate and
// repair drift.
func (s *LedgerService) RecomputeBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	income, err := s.transactionRepo.SumByType(ctx, userID, domain.TransactionTypeIncome)
	if err != nil {
		return decimal.Zero, err
	}
	expense, err := s.transactionRepo.SumByType(ctx, userID, domain.TransactionTypeExpense)
	if err != nil {
		return decimal.Zero, err
	}

	balance := income.Sub(expense)
	if _, err := s.userRepo.SetBalance(ctx, userID, balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
