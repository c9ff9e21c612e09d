package handlers

import (
	"github.com/gin-gonic/gin"

	"facturis/internal/domain/company"
	"facturis/internal/infrastructure/http/v1/dto"
)

// CompanyHandler serves company endpoints.
type CompanyHandler struct {
	service *company.Service
}

func NewCompanyHandler(service *company.Service) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// Create handles POST /api/v1/companies.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !BindJSON(c, &req) {
		return
	}

	entity := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		Error(c, err)
		return
	}

	Created(c, dto.FromCompany(entity))
}

// GetByID handles GET /api/v1/companies/:id.
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, dto.FromCompany(entity))
}

// List handles GET /api/v1/companies.
func (h *CompanyHandler) List(c *gin.Context) {
	filter, ok := ParseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, dto.ListResponse[dto.CompanyResponse]{
		Items:      dto.FromCompanies(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
