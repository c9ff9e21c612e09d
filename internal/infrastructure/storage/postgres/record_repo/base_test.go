package record_repo

import (
	"testing"

	"facturis/internal/core/apperror"
)

func TestParseOrderBy(t *testing.T) {
	allowed := []string{"name", "created_at"}

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty falls back", orderBy: "", want: "name ASC"},
		{name: "plain field ascends", orderBy: "name", want: "name ASC"},
		{name: "minus prefix descends", orderBy: "-created_at", want: "created_at DESC"},
		{name: "plus prefix ascends", orderBy: "+created_at", want: "created_at ASC"},
		{name: "unknown column", orderBy: "password", wantErr: true},
		{name: "injection attempt", orderBy: "name; DROP TABLE companies", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrderBy(tt.orderBy, "name ASC", allowed)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.orderBy, got)
				}
				if !apperror.IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q) = %q, want %q", tt.orderBy, got, tt.want)
			}
		})
	}
}
