package validator_test

import (
	"rental/shared/failure"
	"rental/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingRequest struct {
	PropertyID   string  `json:"propertyId"   validate:"required,uuid"`
	CheckInDate  string  `json:"checkInDate"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string  `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	Amount       float64 `json:"amount"       validate:"omitempty,gt=0"`
	Role         string  `json:"role"         validate:"omitempty,oneof=Owner Customer"`
}

func validBooking() bookingRequest {
	return bookingRequest{
		PropertyID:   "550e8400-e29b-41d4-a716-446655440000",
		CheckInDate:  "2025-05-01",
		CheckOutDate: "2025-05-04",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *bookingRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(_ *bookingRequest) {},
		},
		{
			name:    "missing property id uses json name",
			mutate:  func(r *bookingRequest) { r.PropertyID = "" },
			wantErr: "propertyId is required",
		},
		{
			name:    "malformed date",
			mutate:  func(r *bookingRequest) { r.CheckInDate = "01/05/2025" },
			wantErr: "checkInDate must be a date formatted as 2006-01-02",
		},
		{
			name:    "non positive amount",
			mutate:  func(r *bookingRequest) { r.Amount = -1 },
			wantErr: "amount must be greater than 0",
		},
		{
			name:    "unknown role",
			mutate:  func(r *bookingRequest) { r.Role = "Admin" },
			wantErr: "role must be one of Owner Customer",
		},
		{
			name:    "invalid uuid",
			mutate:  func(r *bookingRequest) { r.PropertyID = "prop-1" },
			wantErr: "propertyId must be a valid UUID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBooking()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, failure.IsKind(err, failure.KindValidation))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", wantErr: true},
		{name: "valid email", field: "owner@example.com", tag: "email"},
		{name: "invalid email", field: "invalid-email", tag: "email", wantErr: true},
		{name: "valid oneof", field: "Owner", tag: "oneof=Owner Customer"},
		{name: "invalid oneof", field: "Admin", tag: "oneof=Owner Customer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		jsonBody string
		wantErr  bool
	}{
		{
			name:     "valid body",
			jsonBody: `{"propertyId":"550e8400-e29b-41d4-a716-446655440000","checkInDate":"2025-05-01","checkOutDate":"2025-05-04"}`,
		},
		{
			name:     "missing fields",
			jsonBody: `{"propertyId":"550e8400-e29b-41d4-a716-446655440000"}`,
			wantErr:  true,
		},
		{
			name:     "malformed json",
			jsonBody: `{"propertyId":}`,
			wantErr:  true,
		},
		{
			name:     "empty object",
			jsonBody: `{}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
