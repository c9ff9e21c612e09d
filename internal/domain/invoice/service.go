package invoice

import (
	"context"
	"fmt"
	"time"

	"facturis/internal/core/apperror"
	"facturis/internal/core/tx"
	"facturis/internal/domain"
	"facturis/internal/domain/client"
	"facturis/internal/domain/company"
	"facturis/pkg/logger"
)

// Service orchestrates invoice creation and reads.
type Service struct {
	repo      Repository
	companies company.Repository
	clients   client.Repository
	allocator NumberAllocator
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new invoice service.
func NewService(
	repo Repository,
	companies company.Repository,
	clients client.Repository,
	allocator NumberAllocator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
		clients:   clients,
		allocator: allocator,
		txManager: txManager,
		now:       time.Now,
	}
}

// Create builds and persists an invoice with its lines in one transaction.
//
// Inside the transaction: the owning company is resolved (its series is the
// numbering namespace), the client is checked to belong to that company, the
// next number for (company, series, issue year) is allocated under the
// advisory lock, line amounts and invoice totals are computed, and the
// invoice row plus all lines are inserted. Any failure rolls everything
// back; an allocated number is then abandoned, leaving a gap but never a
// duplicate.
//
// The returned invoice carries no lines; readers fetch them via GetByID.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Invoice, error) {
	in.Normalize(s.now())

	// Rejected before any transaction opens.
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var inv *Invoice
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		comp, err := s.companies.GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}

		cl, err := s.clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if cl.CompanyID != comp.ID {
			return apperror.NewValidation("client belongs to a different company").
				WithDetail("clientId", cl.ID).
				WithDetail("companyId", comp.ID)
		}

		year := in.IssueDate.Year()
		number, err := s.allocator.Next(ctx, NumberScope{
			CompanyID: comp.ID,
			Series:    comp.Series,
			Year:      year,
		})
		if err != nil {
			return fmt.Errorf("allocate number: %w", err)
		}

		lines, totals := buildLines(in.Lines)

		inv = &Invoice{
			CompanyID: comp.ID,
			ClientID:  cl.ID,
			Series:    comp.Series,
			Year:      year,
			Number:    number,
			IssueDate: in.IssueDate,
			DueDate:   in.DueDate,
			Currency:  in.Currency,
			Notes:     in.Notes,
			Subtotal:  totals.Subtotal,
			VATTotal:  totals.VATTotal,
			Total:     totals.Total,
		}

		if err := s.repo.Create(ctx, inv); err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		if err := s.repo.SaveLines(ctx, inv.ID, lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		"id", inv.ID,
		"company_id", inv.CompanyID,
		"series", inv.Series,
		"year", inv.Year,
		"number", inv.Number,
		"total", inv.Total)

	return inv, nil
}

// buildLines computes amounts for each input line in caller order,
// assigning contiguous 1-based line numbers. Per-line values are rounded
// for persistence; invoice totals sum the unrounded amounts first.
func buildLines(inputs []LineInput) ([]Line, Totals) {
	lines := make([]Line, 0, len(inputs))
	amounts := make([]LineAmounts, 0, len(inputs))

	for i, in := range inputs {
		a := ComputeLine(in.Quantity, in.UnitPrice, in.VATRate)
		amounts = append(amounts, a)

		lines = append(lines, Line{
			LineNo:       i + 1,
			Description:  in.Description,
			Unit:         in.Unit,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			VATRate:      in.VATRate,
			LineSubtotal: Round2(a.Subtotal),
			LineVAT:      Round2(a.VAT),
			LineTotal:    Round2(a.Total),
		})
	}

	return lines, SumTotals(amounts)
}

// GetByID retrieves an invoice together with its lines.
func (s *Service) GetByID(ctx context.Context, id int64) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	inv.Lines = lines

	return inv, nil
}

// List retrieves invoices, optionally scoped to a company.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}
