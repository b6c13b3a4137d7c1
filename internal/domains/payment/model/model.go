package model

import (
	"fmt"
	"rental/shared/model"
	"time"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldAmount        = "amount"
	FieldPaymentMethod = "payment_method"
	FieldStatus        = "status"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}

	return false
}

type Payment struct {
	ID            string  `db:"id"`
	BookingID     string  `db:"booking_id"`
	Amount        float64 `db:"amount"`
	PaymentMethod string  `db:"payment_method"`
	Status        Status  `db:"status"`
	model.Metadata
}

// PaymentDetail is a payment with the booking it settles.
type PaymentDetail struct {
	Payment
	BookingCustomerID   string    `db:"booking_customer_id"    table:"bookings" column:"customer_id"`
	BookingPropertyID   string    `db:"booking_property_id"    table:"bookings" column:"property_id"`
	BookingCheckInDate  time.Time `db:"booking_check_in_date"  table:"bookings" column:"check_in_date"`
	BookingCheckOutDate time.Time `db:"booking_check_out_date" table:"bookings" column:"check_out_date"`
	BookingTotalPrice   float64   `db:"booking_total_price"    table:"bookings" column:"total_price"`
	BookingStatus       string    `db:"booking_status"         table:"bookings" column:"status"`
}

func (PaymentDetail) GetJoinQuery() string {
	return fmt.Sprintf("JOIN bookings ON bookings.id = %s.%s", TableName, FieldBookingID)
}
