// Package invoice_repo provides the PostgreSQL repository for invoices
// and their lines.
package invoice_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"facturis/internal/core/apperror"
	"facturis/internal/domain"
	"facturis/internal/domain/invoice"
	"facturis/internal/infrastructure/storage/postgres"
)

var invoiceCols = []string{
	"id", "company_id", "client_id", "series", "year", "number",
	"issue_date", "due_date", "currency", "notes",
	"subtotal", "vat_total", "total", "created_at",
}

var lineCols = []string{
	"id", "invoice_id", "line_no", "description", "unit",
	"quantity", "unit_price", "vat_rate",
	"line_subtotal", "line_vat", "line_total",
}

// Compile-time check that InvoiceRepo implements invoice.Repository.
var _ invoice.Repository = (*InvoiceRepo)(nil)

// InvoiceRepo persists invoices and their lines.
type InvoiceRepo struct {
	txManager *postgres.TxManager
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{txManager: txManager}
}

// builder returns a squirrel builder with PostgreSQL placeholder format.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the invoice row. A unique violation on the invoice
// identity (company_id, series, year, number) surfaces as a conflict.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	q := builder().
		Insert("invoices").
		Columns("company_id", "client_id", "series", "year", "number",
			"issue_date", "due_date", "currency", "notes",
			"subtotal", "vat_total", "total").
		Values(inv.CompanyID, inv.ClientID, inv.Series, inv.Year, inv.Number,
			inv.IssueDate, inv.DueDate, inv.Currency, inv.Notes,
			inv.Subtotal, inv.VATTotal, inv.Total).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&inv.ID, &inv.CreatedAt); err != nil {
		return postgres.MapError(err, "invoice")
	}

	return nil
}

// SaveLines bulk-inserts invoice lines using the COPY protocol.
// Must run inside the transaction that created the invoice.
func (r *InvoiceRepo) SaveLines(ctx context.Context, invoiceID int64, lines []invoice.Line) error {
	tx := r.txManager.GetTx(ctx)
	if tx == nil {
		return fmt.Errorf("save lines requires transaction context")
	}

	rows := make([][]any, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []any{
			invoiceID, line.LineNo, line.Description, line.Unit,
			line.Quantity, line.UnitPrice, line.VATRate,
			line.LineSubtotal, line.LineVAT, line.LineTotal,
		})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"invoice_lines"},
		[]string{"invoice_id", "line_no", "description", "unit",
			"quantity", "unit_price", "vat_rate",
			"line_subtotal", "line_vat", "line_total"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return postgres.MapError(fmt.Errorf("copy lines: %w", err), "invoice line")
	}

	return nil
}

// GetByID retrieves the invoice row (without lines).
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*invoice.Invoice, error) {
	q := builder().
		Select(invoiceCols...).
		From("invoices").
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", id)
		}
		return nil, postgres.MapError(fmt.Errorf("get invoice: %w", err), "invoice")
	}

	return &inv, nil
}

// GetLines retrieves an invoice's lines ordered by line number.
func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID int64) ([]invoice.Line, error) {
	q := builder().
		Select(lineCols...).
		From("invoice_lines").
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoice.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, postgres.MapError(fmt.Errorf("get lines: %w", err), "invoice line")
	}

	return lines, nil
}

// List retrieves invoices, optionally scoped to a company, newest first
// within a series.
func (r *InvoiceRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	result := domain.ListResult[*invoice.Invoice]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := builder().
		Select(invoiceCols...).
		From("invoices")

	if filter.CompanyID > 0 {
		q = q.Where(squirrel.Eq{"company_id": filter.CompanyID})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"series": "%" + strings.ToUpper(filter.Search) + "%"})
	}

	countQ := builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, postgres.MapError(fmt.Errorf("count invoices: %w", err), "invoice")
	}

	q = q.OrderBy("series ASC", "year DESC", "number DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, postgres.MapError(fmt.Errorf("list invoices: %w", err), "invoice")
	}

	return result, nil
}
