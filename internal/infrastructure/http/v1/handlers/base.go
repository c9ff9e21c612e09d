package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"facturis/internal/core/apperror"
	"facturis/internal/domain"
)

// Error records err on the gin context and aborts the handler chain.
// The error middleware renders it after the chain unwinds.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// BindJSON binds the request body into obj, reporting failures as
// validation errors.
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		Error(c, apperror.NewValidation("invalid request body").WithCause(err))
		return false
	}
	return true
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		Error(c, apperror.NewValidation("path parameter must be a positive integer").
			WithDetail("param", name).
			WithDetail("value", raw))
		return 0, false
	}
	return id, true
}

// ParseIntQuery reads an optional integer query parameter, falling back
// to def when absent.
func ParseIntQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		Error(c, apperror.NewValidation("query parameter must be an integer").
			WithDetail("param", name).
			WithDetail("value", raw))
		return 0, false
	}
	return v, true
}

// ParseListFilter builds a list filter from the common query
// parameters: search, orderBy, limit and offset.
func ParseListFilter(c *gin.Context) (domain.ListFilter, bool) {
	filter := domain.DefaultListFilter()

	filter.Search = c.Query("search")
	filter.OrderBy = c.Query("orderBy")

	limit, ok := ParseIntQuery(c, "limit", filter.Limit)
	if !ok {
		return filter, false
	}
	if limit < 1 || limit > 500 {
		Error(c, apperror.NewValidation("limit must be between 1 and 500").
			WithDetail("value", limit))
		return filter, false
	}
	filter.Limit = limit

	offset, ok := ParseIntQuery(c, "offset", 0)
	if !ok {
		return filter, false
	}
	if offset < 0 {
		Error(c, apperror.NewValidation("offset must not be negative").
			WithDetail("value", offset))
		return filter, false
	}
	filter.Offset = offset

	return filter, true
}

// OK writes a 200 response with the given payload.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
