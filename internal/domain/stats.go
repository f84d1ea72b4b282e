package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window is a half-open time range [Start, End) used for aggregation.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate ensures the window is well-formed: both endpoints set and End
// strictly after Start.
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return ErrInvalidRange
	}
	if !w.End.After(w.Start) {
		return ErrInvalidRange
	}
	return nil
}

// StatsResult holds ungrouped totals for a window.
type StatsResult struct {
	Window       Window          `json:"window"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// Net returns income minus expense.
func (r *StatsResult) Net() decimal.Decimal {
	return r.TotalIncome.Sub(r.TotalExpense)
}

// TagTotals is the per-tag accumulator of income and expense sums.
type TagTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Net returns income minus expense for the bucket.
func (t TagTotals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// TagBucket pairs a tag name with its totals.
type TagBucket struct {
	Tag    string    `json:"tag"`
	Totals TagTotals `json:"totals"`
}

// TagStatsResult holds per-tag totals for a window, ordered by tag name for
// deterministic display.
type TagStatsResult struct {
	Window  Window      `json:"window"`
	Buckets []TagBucket `json:"buckets"`
}
