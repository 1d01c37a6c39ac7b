package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0.00"},
		{"7.5", "$7.50"},
		{"1000", "$1,000.00"},
		{"1100.5", "$1,100.50"},
		{"1234567.891", "$1,234,567.89"},
		{"999.999", "$1,000.00"},
		{"-42.10", "-$42.10"},
	}

	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			require.Equal(t, tc.want, FormatMoney(decimal.RequireFromString(tc.amount)))
		})
	}
}

func TestGenerateRandomSlug(t *testing.T) {
	first := GenerateRandomSlug("Toyota Corolla 2012")
	second := GenerateRandomSlug("Toyota Corolla 2012")

	require.Regexp(t, `^toyota-corolla-2012-[A-Za-z0-9]{8}$`, first)
	require.NotEqual(t, first, second)
}
