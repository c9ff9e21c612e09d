// Package company provides the Company record: the invoicing tenant.
// Each company owns its clients and issues invoices under its own series.
package company

import (
	"context"
	"regexp"
	"strings"
	"time"

	"facturis/internal/core/apperror"
)

// seriesRE constrains the invoice series code: short uppercase namespace,
// e.g. "ROS". The series is part of the invoice numbering scope.
var seriesRE = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// Company represents an invoicing tenant.
type Company struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	// TaxID is the fiscal identifier (CUI), unique across companies.
	TaxID string `db:"tax_id" json:"taxId"`

	// Series is the invoice numbering namespace for this company.
	Series string `db:"series" json:"series"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks required fields and formats.
func (c *Company) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if strings.TrimSpace(c.TaxID) == "" {
		return apperror.NewValidation("tax id is required").
			WithDetail("field", "taxId")
	}

	if !seriesRE.MatchString(c.Series) {
		return apperror.NewValidation("series must be 1-10 uppercase letters or digits").
			WithDetail("field", "series").
			WithDetail("value", c.Series)
	}

	return nil
}
