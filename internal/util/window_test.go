package util

import (
	"errors"
	"testing"
	"time"

	"github.com/tranqh/finbot/internal/domain"
)

func TestParseWindow_Month(t *testing.T) {
	window, err := ParseWindow([]string{"2025-04"}, time.Now())
	if err != nil {
		t.Fatalf("ParseWindow() error = %v", err)
	}

	wantStart := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if !window.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", window.Start, wantStart)
	}
	if !window.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", window.End, wantEnd)
	}
}

func TestParseWindow_MonthYearBoundary(t *testing.T) {
	window, err := ParseWindow([]string{"2025-12"}, time.Now())
	if err != nil {
		t.Fatalf("ParseWindow() error = %v", err)
	}

	wantEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !window.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", window.End, wantEnd)
	}
}

func TestParseWindow_DatePair(t *testing.T) {
	window, err := ParseWindow([]string{"2025-04-10", "2025-04-20"}, time.Now())
	if err != nil {
		t.Fatalf("ParseWindow() error = %v", err)
	}

	if !window.Start.Equal(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", window.Start)
	}
	if !window.End.Equal(time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected end %v", window.End)
	}
}

func TestParseWindow_DefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2025, 7, 18, 14, 30, 0, 0, time.UTC)
	window, err := ParseWindow(nil, now)
	if err != nil {
		t.Fatalf("ParseWindow() error = %v", err)
	}

	wantStart := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if !window.Start.Equal(wantStart) || !window.End.Equal(wantEnd) {
		t.Errorf("window = [%v, %v), want [%v, %v)", window.Start, window.End, wantStart, wantEnd)
	}
}

func TestParseWindow_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"malformed month", []string{"04-2025"}},
		{"month with day", []string{"2025-04-01"}},
		{"garbage month", []string{"abcd-ef"}},
		{"unparsable start date", []string{"not-a-date", "2025-04-20"}},
		{"unparsable end date", []string{"2025-04-10", "never"}},
		{"end before start", []string{"2025-04-20", "2025-04-10"}},
		{"end equals start", []string{"2025-04-10", "2025-04-10"}},
		{"too many arguments", []string{"2025-04-01", "2025-04-10", "2025-04-20"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWindow(tt.args, time.Now())
			if !errors.Is(err, domain.ErrInvalidRange) {
				t.Errorf("ParseWindow(%v) error = %v, want ErrInvalidRange", tt.args, err)
			}
		})
	}
}
