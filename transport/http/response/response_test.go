package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"rental/shared/failure"
	"rental/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "forbidden",
			err:      failure.ResourceRestrictedError,
			wantCode: http.StatusForbidden,
			wantBody: `{"error":"You don't have permission to access this resource"}`,
		},
		{
			name:     "wrapped invalid state",
			err:      fmt.Errorf("failed to approve booking: %w", failure.InvalidState("booking is not pending")),
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"booking is not pending"}`,
		},
		{
			name:     "plain error is hidden",
			err:      errors.New("pq: relation \"bookings\" does not exist"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"status": "Pending"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"status":"Pending"}}`, rec.Body.String())
}
