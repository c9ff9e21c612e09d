// Package v1 wires the HTTP API: routes, handlers and middleware.
package v1

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"facturis/internal/domain/client"
	"facturis/internal/domain/company"
	"facturis/internal/domain/invoice"
	"facturis/internal/infrastructure/http/v1/handlers"
	"facturis/internal/infrastructure/http/v1/middleware"
	"facturis/internal/infrastructure/storage/postgres"
	"facturis/pkg/logger"
)

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	CompanyService *company.Service
	ClientService  *client.Service
	InvoiceService *invoice.Service
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID(cfg.Logger))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"*"}
	router.Use(cors.New(corsCfg))

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	companyHandler := handlers.NewCompanyHandler(cfg.CompanyService)
	clientHandler := handlers.NewClientHandler(cfg.ClientService)
	invoiceHandler := handlers.NewInvoiceHandler(cfg.InvoiceService)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "facturis-api"})
	})
	router.GET("/health", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	api := router.Group("/api/v1")
	{
		companies := api.Group("/companies")
		{
			companies.POST("", companyHandler.Create)
			companies.GET("", companyHandler.List)
			companies.GET("/:id", companyHandler.GetByID)
		}

		clients := api.Group("/clients")
		{
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.GET("/:id", clientHandler.GetByID)
		}

		invoices := api.Group("/invoices")
		{
			invoices.POST("", invoiceHandler.Create)
			invoices.GET("", invoiceHandler.List)
			invoices.GET("/:id", invoiceHandler.GetByID)
		}
	}

	return router
}
