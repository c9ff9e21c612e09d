package dto

import (
	"strings"
	"time"

	"facturis/internal/domain/company"
)

// CreateCompanyRequest is the request body for creating a company.
type CreateCompanyRequest struct {
	Name   string `json:"name" binding:"required"`
	TaxID  string `json:"taxId" binding:"required"`
	Series string `json:"series" binding:"required"`
}

// ToEntity converts the request to a Company.
func (r CreateCompanyRequest) ToEntity() *company.Company {
	return &company.Company{
		Name:   strings.TrimSpace(r.Name),
		TaxID:  strings.TrimSpace(r.TaxID),
		Series: strings.ToUpper(strings.TrimSpace(r.Series)),
	}
}

// CompanyResponse is the API representation of a company.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId"`
	Series    string    `json:"series"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromCompany converts a Company to its response form.
func FromCompany(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Series:    c.Series,
		CreatedAt: c.CreatedAt,
	}
}

// FromCompanies converts a list of companies.
func FromCompanies(items []*company.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(items))
	for _, c := range items {
		out = append(out, FromCompany(c))
	}
	return out
}
