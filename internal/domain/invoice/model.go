// Package invoice provides the Invoice document: sequentially numbered per
// (company, series, fiscal year), created atomically with its lines.
package invoice

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"facturis/internal/core/apperror"
)

// DefaultCurrency is used when the caller does not supply one.
const DefaultCurrency = "RON"

// DefaultUnit is the fallback unit label for lines.
const DefaultUnit = "buc"

// Invoice represents a persisted invoice. Identity is the tuple
// (company_id, series, year, number), unique across the whole store.
// Monetary fields are derived from the lines and rounded to 2 decimals.
type Invoice struct {
	ID        int64 `db:"id" json:"id"`
	CompanyID int64 `db:"company_id" json:"companyId"`
	ClientID  int64 `db:"client_id" json:"clientId"`

	Series string `db:"series" json:"series"`
	Year   int    `db:"year" json:"year"`
	Number int64  `db:"number" json:"number"`

	IssueDate time.Time  `db:"issue_date" json:"issueDate"`
	DueDate   *time.Time `db:"due_date" json:"dueDate,omitempty"`

	Currency string  `db:"currency" json:"currency"`
	Notes    *string `db:"notes" json:"notes,omitempty"`

	Subtotal decimal.Decimal `db:"subtotal" json:"subtotal"`
	VATTotal decimal.Decimal `db:"vat_total" json:"vatTotal"`
	Total    decimal.Decimal `db:"total" json:"total"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Lines are loaded separately by readers; never persisted through
	// the invoice row itself.
	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line represents one invoice line, ordered by a 1-based line number.
// Lines exist only as part of their invoice.
type Line struct {
	ID        int64 `db:"id" json:"id"`
	InvoiceID int64 `db:"invoice_id" json:"invoiceId"`
	LineNo    int   `db:"line_no" json:"lineNo"`

	Description string `db:"description" json:"description"`
	Unit        string `db:"unit" json:"unit"`

	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
	VATRate   decimal.Decimal `db:"vat_rate" json:"vatRate"`

	LineSubtotal decimal.Decimal `db:"line_subtotal" json:"lineSubtotal"`
	LineVAT      decimal.Decimal `db:"line_vat" json:"lineVat"`
	LineTotal    decimal.Decimal `db:"line_total" json:"lineTotal"`
}

// LineInput is the caller-supplied raw line data.
type LineInput struct {
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
}

// CreateInput is the input for invoice creation. The numbering series is
// never caller-supplied; it comes from the owning company.
type CreateInput struct {
	CompanyID int64
	ClientID  int64
	IssueDate time.Time // zero value means today
	DueDate   *time.Time
	Currency  string // empty means DefaultCurrency
	Notes     *string
	Lines     []LineInput
}

// Normalize fills defaults: issue date, currency, unit labels.
func (in *CreateInput) Normalize(now time.Time) {
	if in.IssueDate.IsZero() {
		in.IssueDate = now
	}
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	for i := range in.Lines {
		if strings.TrimSpace(in.Lines[i].Unit) == "" {
			in.Lines[i].Unit = DefaultUnit
		}
	}
}

var vatRateMax = decimal.NewFromInt(100)

// Validate rejects malformed input before any transaction is opened.
func (in *CreateInput) Validate(ctx context.Context) error {
	if in.CompanyID <= 0 {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	if in.ClientID <= 0 {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if len(in.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range in.Lines {
		lineNo := i + 1
		if strings.TrimSpace(line.Description) == "" {
			return apperror.NewValidation("line description is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}
		if line.VATRate.IsNegative() || line.VATRate.GreaterThan(vatRateMax) {
			return apperror.NewValidation("vat rate must be between 0 and 100").
				WithDetail("field", "lines").
				WithDetail("lineNo", lineNo)
		}
	}

	return nil
}
