package dto

import (
	"strings"
	"time"

	"facturis/internal/domain/client"
)

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	CompanyID  int64   `json:"companyId" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	TaxID      *string `json:"taxId"`
	RegistryID *string `json:"registryId"`
	Address    *string `json:"address"`
	VATPayer   bool    `json:"vatPayer"`
}

// ToEntity converts the request to a Client.
func (r CreateClientRequest) ToEntity() *client.Client {
	return &client.Client{
		CompanyID:  r.CompanyID,
		Name:       strings.TrimSpace(r.Name),
		TaxID:      r.TaxID,
		RegistryID: r.RegistryID,
		Address:    r.Address,
		VATPayer:   r.VATPayer,
	}
}

// ClientResponse is the API representation of a client.
type ClientResponse struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"companyId"`
	Name       string    `json:"name"`
	TaxID      *string   `json:"taxId,omitempty"`
	RegistryID *string   `json:"registryId,omitempty"`
	Address    *string   `json:"address,omitempty"`
	VATPayer   bool      `json:"vatPayer"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromClient converts a Client to its response form.
func FromClient(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		CompanyID:  c.CompanyID,
		Name:       c.Name,
		TaxID:      c.TaxID,
		RegistryID: c.RegistryID,
		Address:    c.Address,
		VATPayer:   c.VATPayer,
		CreatedAt:  c.CreatedAt,
	}
}

// FromClients converts a list of clients.
func FromClients(items []*client.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(items))
	for _, c := range items {
		out = append(out, FromClient(c))
	}
	return out
}
