package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	p := DefaultPricing()

	cases := []struct {
		total, fee, final string
	}{
		{"450", "40", "490"},
		{"500", "0", "500"},
		{"499.99", "40", "539.99"},
		{"1200", "0", "1200"},
	}
	for _, tc := range cases {
		q := p.Quote(decimal.RequireFromString(tc.total))
		require.True(t, decimal.RequireFromString(tc.fee).Equal(q.DeliveryFee), tc.total)
		require.True(t, decimal.RequireFromString(tc.final).Equal(q.FinalAmount), tc.total)
		require.True(t, q.FinalAmount.Equal(q.TotalAmount.Add(q.DeliveryFee).Sub(q.Discount)))
	}
}
