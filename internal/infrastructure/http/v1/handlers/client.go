package handlers

import (
	"github.com/gin-gonic/gin"

	"facturis/internal/domain/client"
	"facturis/internal/infrastructure/http/v1/dto"
)

// ClientHandler serves client endpoints.
type ClientHandler struct {
	service *client.Service
}

func NewClientHandler(service *client.Service) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /api/v1/clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !BindJSON(c, &req) {
		return
	}

	entity := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		Error(c, err)
		return
	}

	Created(c, dto.FromClient(entity))
}

// GetByID handles GET /api/v1/clients/:id.
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, dto.FromClient(entity))
}

// List handles GET /api/v1/clients. An optional companyId query
// parameter scopes the listing to one company.
func (h *ClientHandler) List(c *gin.Context) {
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

	OK(c, dto.ListResponse[dto.ClientResponse]{
		Items:      dto.FromClients(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
