package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"facturis/internal/core/apperror"
	"facturis/internal/domain/invoice"
)

// dateLayout is the wire format for dates (issue/due).
const dateLayout = "2006-01-02"

// CreateInvoiceLineRequest is one raw invoice line.
type CreateInvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
}

// CreateInvoiceRequest is the request body for creating an invoice.
// The numbering series is not accepted here; it comes from the company.
type CreateInvoiceRequest struct {
	CompanyID int64                      `json:"companyId" binding:"required"`
	ClientID  int64                      `json:"clientId" binding:"required"`
	IssueDate string                     `json:"issueDate"`
	DueDate   *string                    `json:"dueDate"`
	Currency  string                     `json:"currency"`
	Notes     *string                    `json:"notes"`
	Lines     []CreateInvoiceLineRequest `json:"lines" binding:"required"`
}

// ToInput converts the request to a creation input, parsing dates.
func (r CreateInvoiceRequest) ToInput() (invoice.CreateInput, error) {
	in := invoice.CreateInput{
		CompanyID: r.CompanyID,
		ClientID:  r.ClientID,
		Currency:  strings.ToUpper(strings.TrimSpace(r.Currency)),
		Notes:     r.Notes,
	}

	if r.IssueDate != "" {
		t, err := time.Parse(dateLayout, r.IssueDate)
		if err != nil {
			return in, apperror.NewValidation("issueDate must be formatted YYYY-MM-DD").
				WithDetail("field", "issueDate").
				WithDetail("value", r.IssueDate)
		}
		in.IssueDate = t
	}

	if r.DueDate != nil && *r.DueDate != "" {
		t, err := time.Parse(dateLayout, *r.DueDate)
		if err != nil {
			return in, apperror.NewValidation("dueDate must be formatted YYYY-MM-DD").
				WithDetail("field", "dueDate").
				WithDetail("value", *r.DueDate)
		}
		in.DueDate = &t
	}

	in.Lines = make([]invoice.LineInput, 0, len(r.Lines))
	for _, line := range r.Lines {
		in.Lines = append(in.Lines, invoice.LineInput{
			Description: line.Description,
			Unit:        line.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			VATRate:     line.VATRate,
		})
	}

	return in, nil
}

// InvoiceLineResponse is the API representation of one invoice line.
type InvoiceLineResponse struct {
	LineNo       int             `json:"lineNo"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	VATRate      decimal.Decimal `json:"vatRate"`
	LineSubtotal decimal.Decimal `json:"lineSubtotal"`
	LineVAT      decimal.Decimal `json:"lineVat"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// InvoiceResponse is the API representation of an invoice.
type InvoiceResponse struct {
	ID        int64                 `json:"id"`
	CompanyID int64                 `json:"companyId"`
	ClientID  int64                 `json:"clientId"`
	Series    string                `json:"series"`
	Year      int                   `json:"year"`
	Number    int64                 `json:"number"`
	IssueDate string                `json:"issueDate"`
	DueDate   *string               `json:"dueDate,omitempty"`
	Currency  string                `json:"currency"`
	Notes     *string               `json:"notes,omitempty"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
	VATTotal  decimal.Decimal       `json:"vatTotal"`
	Total     decimal.Decimal       `json:"total"`
	CreatedAt time.Time             `json:"createdAt"`
	Lines     []InvoiceLineResponse `json:"lines,omitempty"`
}

// FromInvoice converts an Invoice to its response form.
func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:        inv.ID,
		CompanyID: inv.CompanyID,
		ClientID:  inv.ClientID,
		Series:    inv.Series,
		Year:      inv.Year,
		Number:    inv.Number,
		IssueDate: inv.IssueDate.Format(dateLayout),
		Currency:  inv.Currency,
		Notes:     inv.Notes,
		Subtotal:  inv.Subtotal,
		VATTotal:  inv.VATTotal,
		Total:     inv.Total,
		CreatedAt: inv.CreatedAt,
	}

	if inv.DueDate != nil {
		due := inv.DueDate.Format(dateLayout)
		resp.DueDate = &due
	}

	for _, line := range inv.Lines {
		resp.Lines = append(resp.Lines, InvoiceLineResponse{
			LineNo:       line.LineNo,
			Description:  line.Description,
			Unit:         line.Unit,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			VATRate:      line.VATRate,
			LineSubtotal: line.LineSubtotal,
			LineVAT:      line.LineVAT,
			LineTotal:    line.LineTotal,
		})
	}

	return resp
}

// FromInvoices converts a list of invoices (without lines).
func FromInvoices(items []*invoice.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, FromInvoice(inv))
	}
	return out
}
