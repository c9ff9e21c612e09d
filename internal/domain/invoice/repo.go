package invoice

import (
	"context"

	"facturis/internal/domain"
)

// Repository defines the interface for Invoice persistence.
// Create and SaveLines must be called inside one transaction; the
// service owns that transaction.
type Repository interface {
	// Create inserts the invoice row and fills in its generated ID.
	Create(ctx context.Context, inv *Invoice) error

	// SaveLines bulk-inserts the lines of a freshly created invoice.
	SaveLines(ctx context.Context, invoiceID int64, lines []Line) error

	// GetByID retrieves the invoice row (without lines).
	GetByID(ctx context.Context, id int64) (*Invoice, error)

	// GetLines retrieves an invoice's lines ordered by line number.
	GetLines(ctx context.Context, invoiceID int64) ([]Line, error)

	// List retrieves invoices, optionally scoped to a company.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error)
}

// NumberScope identifies one numbering stream: invoice numbers are unique
// and sequential within a scope, independent across scopes.
type NumberScope struct {
	CompanyID int64
	Series    string
	Year      int
}

// NumberAllocator returns the next invoice number for a scope, serialized
// against concurrent callers. Next must run inside the transaction carried
// by ctx; the serialization it acquires is released when that transaction
// ends.
type NumberAllocator interface {
	Next(ctx context.Context, scope NumberScope) (int64, error)
}
