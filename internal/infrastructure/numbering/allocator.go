// Package numbering allocates sequential invoice numbers per
// (company, series, fiscal year) scope.
//
// Allocation is serialized with a transaction-scoped Postgres advisory lock
// (pg_advisory_xact_lock): concurrent callers on the same scope queue at the
// lock, callers on different scopes proceed fully in parallel, and the lock
// is released automatically when the enclosing transaction ends. The next
// number is max persisted number for the exact scope + 1, so an aborted
// transaction leaves a gap but can never produce a duplicate.
package numbering

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"facturis/internal/domain/invoice"
	"facturis/internal/infrastructure/storage/postgres"
)

// Querier is the subset of pgx operations the allocator needs.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Compile-time check that Service implements invoice.NumberAllocator.
var _ invoice.NumberAllocator = (*Service)(nil)

// Service implements invoice number allocation on top of the transaction
// manager. Next must run inside an open transaction: the advisory lock it
// takes is bound to that transaction's lifetime.
type Service struct {
	txManager *postgres.TxManager
}

// NewService creates a new allocator.
func NewService(txManager *postgres.TxManager) *Service {
	return &Service{txManager: txManager}
}

// Next returns the next invoice number for scope.
func (s *Service) Next(ctx context.Context, scope invoice.NumberScope) (int64, error) {
	if s.txManager.GetTx(ctx) == nil {
		return 0, fmt.Errorf("numbering: Next requires an open transaction")
	}
	return next(ctx, s.txManager.GetQuerier(ctx), scope)
}

func next(ctx context.Context, q Querier, scope invoice.NumberScope) (int64, error) {
	if _, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", LockKey(scope)); err != nil {
		return 0, fmt.Errorf("acquire scope lock: %w", err)
	}

	var max int64
	err := q.QueryRow(ctx, `
        SELECT COALESCE(MAX(number), 0)
        FROM invoices
        WHERE company_id = $1 AND series = $2 AND year = $3
	`, scope.CompanyID, scope.Series, scope.Year).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("query max number: %w", err)
	}

	return max + 1, nil
}

// LockKey folds a scope into one int64 advisory lock key: company and year
// directly, the series as a bounded character-code hash. Two series of the
// same company/year can collide on a key, which only serializes their
// allocations unnecessarily; uniqueness is still decided by the exact scope
// tuple in the MAX query and the database constraint.
func LockKey(scope invoice.NumberScope) int64 {
	var hash int64
	for _, r := range scope.Series {
		hash += int64(r)
	}
	hash %= 100

	return scope.CompanyID*1_000_000 + int64(scope.Year)*100 + hash
}
