package handlers

import (
	"github.com/gin-gonic/gin"

	"facturis/internal/domain/invoice"
	"facturis/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler serves invoice endpoints.
type InvoiceHandler struct {
	service *invoice.Service
}

func NewInvoiceHandler(service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// Create handles POST /api/v1/invoices. The whole operation (number
// allocation, invoice and line inserts) runs in one transaction.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !BindJSON(c, &req) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		Error(c, err)
		return
	}

	inv, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, dto.FromInvoice(inv))
}

// GetByID handles GET /api/v1/invoices/:id, returning the invoice with
// its lines in positional order.
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, dto.FromInvoice(inv))
}

// List handles GET /api/v1/invoices. Headers only; lines are served by
// GetByID.
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, ok := ParseListFilter(c)
	if !ok {
		return
	}

	companyID, ok := ParseIntQuery(c, "companyId", 0)
	if !ok {
		return
	}
	filter.CompanyID = int64(companyID)

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, dto.ListResponse[dto.InvoiceResponse]{
		Items:      dto.FromInvoices(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
