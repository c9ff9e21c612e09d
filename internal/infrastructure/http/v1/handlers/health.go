package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facturis/internal/core/apperror"
	"facturis/internal/infrastructure/storage/postgres"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pool *postgres.Pool
}

func NewHealthHandler(pool *postgres.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Live reports that the process is up.
func (h *HealthHandler) Live(c *gin.Context) {
	OK(c, gin.H{"status": "ok"})
}

// Ready reports whether the database is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		Error(c, apperror.NewDependencyUnavailable("database", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
