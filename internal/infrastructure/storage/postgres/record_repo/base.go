// Package record_repo provides PostgreSQL repositories for plain records:
// companies and clients.
package record_repo

import (
	"strings"

	"github.com/Masterminds/squirrel"

	"facturis/internal/core/apperror"
)

// builder returns a squirrel builder with PostgreSQL placeholder format.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// parseOrderBy validates an "field" / "-field" ordering expression against
// a column whitelist. Empty input falls back to the given default.
func parseOrderBy(orderBy, fallback string, allowed []string) (string, error) {
	if orderBy == "" {
		return fallback, nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	for _, col := range allowed {
		if field == col {
			return field + " " + direction, nil
		}
	}

	return "", apperror.NewValidation("invalid orderBy").
		WithDetail("orderBy", orderBy)
}
