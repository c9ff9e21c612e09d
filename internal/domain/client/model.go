// Package client provides the Client record: a company's invoicing partner.
package client

import (
	"context"
	"strings"
	"time"

	"facturis/internal/core/apperror"
)

// Client represents an invoice recipient owned by exactly one company.
type Client struct {
	ID        int64 `db:"id" json:"id"`
	CompanyID int64 `db:"company_id" json:"companyId"`

	Name string `db:"name" json:"name"`

	// TaxID is the client's fiscal identifier, if any.
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	// RegistryID is the trade registry number, if any.
	RegistryID *string `db:"registry_id" json:"registryId,omitempty"`

	Address *string `db:"address" json:"address,omitempty"`

	// VATPayer marks whether the client is registered for VAT.
	VATPayer bool `db:"vat_payer" json:"vatPayer"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Validate checks required fields.
func (c *Client) Validate(ctx context.Context) error {
	if c.CompanyID <= 0 {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	return nil
}
