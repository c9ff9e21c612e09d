package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name         string
		qty          string
		price        string
		vatRate      string
		wantSubtotal string
		wantVAT      string
		wantTotal    string
	}{
		{
			name: "standard rate",
			qty:  "2", price: "100", vatRate: "19",
			wantSubtotal: "200", wantVAT: "38", wantTotal: "238",
		},
		{
			name: "zero rate",
			qty:  "3", price: "50", vatRate: "0",
			wantSubtotal: "150", wantVAT: "0", wantTotal: "150",
		},
		{
			name: "fractional quantity",
			qty:  "0.5", price: "19.99", vatRate: "9",
			wantSubtotal: "9.995", wantVAT: "0.89955", wantTotal: "10.89455",
		},
		{
			name: "zero price",
			qty:  "10", price: "0", vatRate: "19",
			wantSubtotal: "0", wantVAT: "0", wantTotal: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLine(d(tt.qty), d(tt.price), d(tt.vatRate))

			assert.True(t, got.Subtotal.Equal(d(tt.wantSubtotal)),
				"subtotal: want %s, got %s", tt.wantSubtotal, got.Subtotal)
			assert.True(t, got.VAT.Equal(d(tt.wantVAT)),
				"vat: want %s, got %s", tt.wantVAT, got.VAT)
			assert.True(t, got.Total.Equal(d(tt.wantTotal)),
				"total: want %s, got %s", tt.wantTotal, got.Total)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.90", Round2(d("10.895")).StringFixed(2))
	assert.Equal(t, "10.89", Round2(d("10.894")).StringFixed(2))
	assert.Equal(t, "-10.90", Round2(d("-10.895")).StringFixed(2))
	assert.Equal(t, "7.00", Round2(d("7")).StringFixed(2))
}

func TestSumTotals_RoundsOnceAtEnd(t *testing.T) {
	// Three lines of 0.333 VAT each. Per-line rounding would give
	// 0.33 * 3 = 0.99; summing first gives round(0.999) = 1.00.
	amounts := []LineAmounts{}
	for i := 0; i < 3; i++ {
		amounts = append(amounts, ComputeLine(d("1"), d("1.665"), d("20")))
	}

	totals := SumTotals(amounts)

	require.Equal(t, "5.00", totals.Subtotal.StringFixed(2)) // 1.665 * 3 = 4.995
	require.Equal(t, "1.00", totals.VATTotal.StringFixed(2)) // 0.333 * 3 = 0.999
	require.Equal(t, "6.00", totals.Total.StringFixed(2))
}

func TestSumTotals_TotalConsistentWithAggregates(t *testing.T) {
	amounts := []LineAmounts{
		ComputeLine(d("2"), d("100"), d("19")),
		ComputeLine(d("1.5"), d("33.33"), d("9")),
		ComputeLine(d("7"), d("0.99"), d("5")),
	}

	totals := SumTotals(amounts)

	want := Round2(totals.Subtotal.Add(totals.VATTotal))
	assert.True(t, totals.Total.Equal(want),
		"total %s must equal subtotal+vat rounded %s", totals.Total, want)
}

func TestSumTotals_Empty(t *testing.T) {
	totals := SumTotals(nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.VATTotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}
