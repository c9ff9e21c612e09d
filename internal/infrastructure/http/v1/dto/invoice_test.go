package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturis/internal/core/apperror"
)

func TestToInput_ParsesDates(t *testing.T) {
	due := "2026-04-14"
	req := CreateInvoiceRequest{
		CompanyID: 1,
		ClientID:  2,
		IssueDate: "2026-03-15",
		DueDate:   &due,
		Currency:  " eur ",
	}

	in, err := req.ToInput()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), in.IssueDate)
	require.NotNil(t, in.DueDate)
	assert.Equal(t, time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), *in.DueDate)
	assert.Equal(t, "EUR", in.Currency)
}

func TestToInput_EmptyDatesLeftForDefaults(t *testing.T) {
	req := CreateInvoiceRequest{CompanyID: 1, ClientID: 2}

	in, err := req.ToInput()
	require.NoError(t, err)

	assert.True(t, in.IssueDate.IsZero())
	assert.Nil(t, in.DueDate)
}

func TestToInput_RejectsMalformedDates(t *testing.T) {
	bad := "15/03/2026"

	tests := []struct {
		name string
		req  CreateInvoiceRequest
	}{
		{"issue date", CreateInvoiceRequest{CompanyID: 1, ClientID: 2, IssueDate: bad}},
		{"due date", CreateInvoiceRequest{CompanyID: 1, ClientID: 2, DueDate: &bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToInput()
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}
