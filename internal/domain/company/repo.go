package company

import (
	"context"

	"facturis/internal/domain"
)

// Repository defines the interface for Company persistence.
type Repository interface {
	// Create inserts a new company and fills in its generated ID.
	Create(ctx context.Context, c *Company) error

	// GetByID retrieves a company by ID.
	GetByID(ctx context.Context, id int64) (*Company, error)

	// List retrieves companies with pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Company], error)
}
