package record_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"facturis/internal/core/apperror"
	"facturis/internal/domain"
	"facturis/internal/domain/client"
	"facturis/internal/infrastructure/storage/postgres"
)

var clientCols = []string{
	"id", "company_id", "name", "tax_id", "registry_id",
	"address", "vat_payer", "created_at",
}

// Compile-time check that ClientRepo implements client.Repository.
var _ client.Repository = (*ClientRepo)(nil)

// ClientRepo persists Client records.
type ClientRepo struct {
	txManager *postgres.TxManager
}

// NewClientRepo creates a new client repository.
func NewClientRepo(txManager *postgres.TxManager) *ClientRepo {
	return &ClientRepo{txManager: txManager}
}

// Create inserts a new client and fills in generated fields.
func (r *ClientRepo) Create(ctx context.Context, c *client.Client) error {
	q := builder().
		Insert("clients").
		Columns("company_id", "name", "tax_id", "registry_id", "address", "vat_payer").
		Values(c.CompanyID, c.Name, c.TaxID, c.RegistryID, c.Address, c.VATPayer).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return postgres.MapError(err, "client")
	}

	return nil
}

// GetByID retrieves a client by ID.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	q := builder().
		Select(clientCols...).
		From("clients").
		Where(squirrel.Eq{"id": id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c client.Client
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("client", id)
		}
		return nil, postgres.MapError(fmt.Errorf("get client: %w", err), "client")
	}

	return &c, nil
}

// List retrieves clients, optionally scoped to a company.
func (r *ClientRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*client.Client], error) {
	result := domain.ListResult[*client.Client]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := builder().
		Select(clientCols...).
		From("clients")

	if filter.CompanyID > 0 {
		q = q.Where(squirrel.Eq{"company_id": filter.CompanyID})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.ILike{"name": pattern})
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
		return result, postgres.MapError(fmt.Errorf("count clients: %w", err), "client")
	}

	orderBy, err := parseOrderBy(filter.OrderBy, "name ASC", clientCols)
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
		return result, postgres.MapError(fmt.Errorf("list clients: %w", err), "client")
	}

	return result, nil
}
