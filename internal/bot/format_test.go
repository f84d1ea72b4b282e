package bot

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "0 VND"},
		{"400", "400 VND"},
		{"1000", "1,000 VND"},
		{"2500000", "2,500,000 VND"},
		{"1100.5", "1,100.5 VND"},
		{"-600", "-600 VND"},
	}

	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.amount)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, formatAmount(d))
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/04/2025", formatDate(d))
}
