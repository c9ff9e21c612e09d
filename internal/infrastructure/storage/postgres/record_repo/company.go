package record_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"facturis/internal/core/apperror"
	"facturis/internal/domain"
	"facturis/internal/domain/company"
	"facturis/internal/infrastructure/storage/postgres"
)

var companyCols = []string{"id", "name", "tax_id", "series", "created_at"}

// Compile-time check that CompanyRepo implements company.Repository.
var _ company.Repository = (*CompanyRepo)(nil)

// CompanyRepo persists Company records.
type CompanyRepo struct {
	txManager *postgres.TxManager
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(txManager *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{txManager: txManager}
}

// Create inserts a new company and fills in generated fields.
func (r *CompanyRepo) Create(ctx context.Context, c *company.Company) error {
	q := builder().
		Insert("companies").
		Columns("name", "tax_id", "series").
		Values(c.Name, c.TaxID, c.Series).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return postgres.MapError(err, "company")
	}

	return nil
}

// GetByID retrieves a company by ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*company.Company, error) {
	q := builder().
		Select(companyCols...).
		From("companies").
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c company.Company
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("company", id)
		}
		return nil, postgres.MapError(fmt.Errorf("get company: %w", err), "company")
	}

	return &c, nil
}

// List retrieves companies with pagination.
func (r *CompanyRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*company.Company], error) {
	result := domain.ListResult[*company.Company]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := builder().
		Select(companyCols...).
		From("companies")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"tax_id": pattern},
		})
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
		return result, postgres.MapError(fmt.Errorf("count companies: %w", err), "company")
	}

	orderBy, err := parseOrderBy(filter.OrderBy, "name ASC", companyCols)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

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
		return result, postgres.MapError(fmt.Errorf("list companies: %w", err), "company")
	}

	return result, nil
}
