package util

import (
	"regexp"
	"time"

	"github.com/tranqh/finbot/internal/domain"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ParseWindow builds the aggregation window from stats command arguments.
// No arguments means the current calendar month. A single YYYY-MM argument
// expands to [first of month, first of next month). Two YYYY-MM-DD arguments
// form an explicit [start, end) pair. Anything else fails with
// ErrInvalidRange.
func ParseWindow(args []string, now time.Time) (domain.Window, error) {
	switch len(args) {
	case 0:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.Window{Start: start, End: start.AddDate(0, 1, 0)}, nil

	case 1:
		if !monthPattern.MatchString(args[0]) {
			return domain.Window{}, domain.ErrInvalidRange
		}
		start, err := time.ParseInLocation("2006-01", args[0], time.UTC)
		if err != nil {
			return domain.Window{}, domain.ErrInvalidRange
		}
		return domain.Window{Start: start, End: start.AddDate(0, 1, 0)}, nil

	case 2:
		start, err := time.ParseInLocation("2006-01-02", args[0], time.UTC)
		if err != nil {
			return domain.Window{}, domain.ErrInvalidRange
		}
		end, err := time.ParseInLocation("2006-01-02", args[1], time.UTC)
		if err != nil {
			return domain.Window{}, domain.ErrInvalidRange
		}
		window := domain.Window{Start: start, End: end}
		if err := window.Validate(); err != nil {
			return domain.Window{}, err
		}
		return window, nil

	default:
		return domain.Window{}, domain.ErrInvalidRange
	}
}
