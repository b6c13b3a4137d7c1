package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rental/internal/domains/booking/model"
)

func date(value string) time.Time {
	t, _ := time.Parse(time.DateOnly, value)

	return t
}

func TestStatus_CanTransitionTo(t *testing.T) {
	all := []model.Status{model.StatusPending, model.StatusApproved, model.StatusRejected, model.StatusCompleted}

	allowed := map[model.Status][]model.Status{
		model.StatusPending:  {model.StatusApproved, model.StatusRejected},
		model.StatusApproved: {model.StatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false

			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}

			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, model.StatusPending.IsTerminal())
	assert.False(t, model.StatusApproved.IsTerminal())
	assert.True(t, model.StatusRejected.IsTerminal())
	assert.True(t, model.StatusCompleted.IsTerminal())
	assert.False(t, model.Status("Cancelled").IsTerminal())
	assert.False(t, model.Status("Cancelled").Valid())
}

func TestNightsAndTotalPrice(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		price    float64
		nights   int
		total    float64
	}{
		{"three nights", date("2024-01-01"), date("2024-01-04"), 100, 3, 300},
		{"one night", date("2024-02-28"), date("2024-02-29"), 89.99, 1, 89.99},
		{"across month end", date("2024-01-30"), date("2024-02-02"), 120.5, 3, 361.5},
		{"partial day rounds up", date("2024-01-01"), date("2024-01-02").Add(time.Hour), 50, 2, 100},
		{"same day", date("2024-01-01"), date("2024-01-01"), 100, 0, 0},
		{"reversed", date("2024-01-04"), date("2024-01-01"), 100, -3, -300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nights := model.Nights(tt.checkIn, tt.checkOut)

			assert.Equal(t, tt.nights, nights)
			assert.InDelta(t, tt.total, model.TotalPrice(nights, tt.price), 1e-9)
		})
	}
}

func TestCanDecide(t *testing.T) {
	detail := model.BookingDetail{
		Booking:         model.Booking{ID: "b-1", CustomerID: "customer-1"},
		PropertyOwnerID: "owner-1",
	}

	assert.True(t, model.CanDecide("owner-1", detail))
	assert.False(t, model.CanDecide("customer-1", detail))
	assert.False(t, model.CanDecide("owner-2", detail))
	assert.False(t, model.CanDecide("", model.BookingDetail{}))
}

func TestBookingDetail_GetJoinQuery(t *testing.T) {
	assert.Equal(t,
		"JOIN properties ON properties.id = bookings.property_id LEFT JOIN payments ON payments.booking_id = bookings.id",
		model.BookingDetail{}.GetJoinQuery(),
	)
}
