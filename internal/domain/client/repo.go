package client

import (
	"context"

	"facturis/internal/domain"
)

// Repository defines the interface for Client persistence.
type Repository interface {
	// Create inserts a new client and fills in its generated ID.
	Create(ctx context.Context, c *Client) error

	// GetByID retrieves a client by ID.
	GetByID(ctx context.Context, id int64) (*Client, error)

	// List retrieves clients, optionally scoped to a company.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Client], error)
}
