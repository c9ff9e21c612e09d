package invoice

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineAmounts holds the computed amounts for one line, unrounded.
// Rounding to 2 decimals happens only at the persistence boundary;
// invoice-level totals are summed from the unrounded values first so
// rounding error does not compound across lines.
type LineAmounts struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeLine calculates amounts for a single line. Pure, no side effects.
//
//	subtotal = qty x price
//	vat      = subtotal x rate / 100
//	total    = subtotal + vat
func ComputeLine(qty, price, vatRate decimal.Decimal) LineAmounts {
	subtotal := qty.Mul(price)
	vat := subtotal.Mul(vatRate).Div(hundred)
	return LineAmounts{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal.Add(vat),
	}
}

// Round2 rounds a monetary value to 2 decimal places (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Totals holds the invoice-level aggregates, rounded to 2 decimals.
type Totals struct {
	Subtotal decimal.Decimal
	VATTotal decimal.Decimal
	Total    decimal.Decimal
}

// SumTotals accumulates unrounded per-line amounts and rounds once at the
// end. Total is derived from the rounded aggregates, which keeps
// total == round(subtotal + vat_total, 2) exact by construction.
func SumTotals(amounts []LineAmounts) Totals {
	subtotal := decimal.Zero
	vat := decimal.Zero
	for _, a := range amounts {
		subtotal = subtotal.Add(a.Subtotal)
		vat = vat.Add(a.VAT)
	}

	roundedSubtotal := Round2(subtotal)
	roundedVAT := Round2(vat)
	return Totals{
		Subtotal: roundedSubtotal,
		VATTotal: roundedVAT,
		Total:    roundedSubtotal.Add(roundedVAT),
	}
}
