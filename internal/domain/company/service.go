package company

import (
	"context"

	"facturis/internal/domain"
	"facturis/pkg/logger"
)

// Service provides business logic for the Company record.
type Service struct {
	repo Repository
}

// NewService creates a new Company service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new company.
func (s *Service) Create(ctx context.Context, c *Company) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	logger.Info(ctx, "company created",
		"id", c.ID,
		"series", c.Series)

	return nil
}

// GetByID retrieves a company by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (*Company, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves companies with pagination.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Company], error) {
	return s.repo.List(ctx, filter)
}
