package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tranqh/finbot/internal/domain"
	"golang.org/x/sync/errgroup"
)

// StatsService computes aggregate sums over half-open time windows
type StatsService struct {
	transactionRepo domain.TransactionRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(transactionRepo domain.TransactionRepository) *StatsService {
	return &StatsService{transactionRepo: transactionRepo}
}

// Aggregate returns total income and expense for the user over [start, end).
// The two sums have no ordering dependency, so they are fetched concurrently
// and joined. A window with no transactions yields zero totals, not an error.
func (s *StatsService) Aggregate(ctx context.Context, userID uuid.UUID, window domain.Window) (*domain.StatsResult, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var income, expense decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		income, err = s.transactionRepo.SumByTypeInWindow(gctx, userID, domain.TransactionTypeIncome, window.Start, window.End)
		return err
	})
	g.Go(func() error {
		var err error
		expense, err = s.transactionRepo.SumByTypeInWindow(gctx, userID, domain.TransactionTypeExpense, window.Start, window.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.StatsResult{
		Window:       window,
		TotalIncome:  income,
		TotalExpense: expense,
	}, nil
}

// AggregateByTag returns per-tag income and expense totals over [start, end).
// Every matching transaction contributes its full amount to the bucket of
// each of its tags; a transaction with N tags feeds N buckets and one with no
// tags feeds none. Buckets are ordered by tag name.
func (s *StatsService) AggregateByTag(ctx context.Context, userID uuid.UUID, window domain.Window) (*domain.TagStatsResult, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListTaggedInWindow(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]domain.TagTotals)
	for _, transaction := range transactions {
		for _, tag := range transaction.Tags {
			totals := buckets[tag.Name]
			switch transaction.Type {
			case domain.TransactionTypeIncome:
				totals.Income = totals.Income.Add(transaction.Amount)
			case domain.TransactionTypeExpense:
				totals.Expense = totals.Expense.Add(transaction.Amount)
			}
			buckets[tag.Name] = totals
		}
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &domain.TagStatsResult{
		Window:  window,
		Buckets: make([]domain.TagBucket, 0, len(names)),
	}
	for _, name := range names {
		result.Buckets = append(result.Buckets, domain.TagBucket{
			Tag:    name,
			Totals: buckets[name],
		})
	}
	return result, nil
}
