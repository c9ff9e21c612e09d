package company

import (
	"context"
	"testing"

	"facturis/internal/core/apperror"
)

func TestValidate(t *testing.T) {
	valid := Company{Name: "Rosia Demo SRL", TaxID: "RO11111111", Series: "ROS"}

	tests := []struct {
		name    string
		mutate  func(*Company)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Company) {}},
		{name: "single char series", mutate: func(c *Company) { c.Series = "A" }},
		{name: "digits in series", mutate: func(c *Company) { c.Series = "F24" }},
		{name: "missing name", mutate: func(c *Company) { c.Name = "  " }, wantErr: true},
		{name: "missing tax id", mutate: func(c *Company) { c.TaxID = "" }, wantErr: true},
		{name: "empty series", mutate: func(c *Company) { c.Series = "" }, wantErr: true},
		{name: "lowercase series", mutate: func(c *Company) { c.Series = "ros" }, wantErr: true},
		{name: "series too long", mutate: func(c *Company) { c.Series = "ABCDEFGHIJK" }, wantErr: true},
		{name: "series with space", mutate: func(c *Company) { c.Series = "RO S" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)

			err := c.Validate(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !apperror.IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
