package client

import (
	"context"

	"facturis/internal/domain"
	"facturis/internal/domain/company"
	"facturis/pkg/logger"
)

// Service provides business logic for the Client record.
type Service struct {
	repo      Repository
	companies company.Repository
}

// NewService creates a new Client service.
func NewService(repo Repository, companies company.Repository) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
	}
}

// Create validates and persists a new client under its owning company.
func (s *Service) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	// The owning company must exist; surfaces NotFound otherwise.
	if _, err := s.companies.GetByID(ctx, c.CompanyID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	logger.Info(ctx, "client created",
		"id", c.ID,
		"company_id", c.CompanyID)

	return nil
}

// GetByID retrieves a client by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves clients, optionally scoped to a company.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Client], error) {
	return s.repo.List(ctx, filter)
}
