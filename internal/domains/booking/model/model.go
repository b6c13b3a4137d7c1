package model

import (
	"database/sql"
	"fmt"
	"math"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldPropertyID   = "property_id"
	FieldCustomerID   = "customer_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
	FieldTotalPrice   = "total_price"

	// ArgCurrentStatus names the status guard so it does not collide with the status being set.
	ArgCurrentStatus = "current_status"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCompleted Status = "Completed"
)

// transitions lists every legal move. Statuses without an entry are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}

	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

type Booking struct {
	ID           string    `db:"id"`
	PropertyID   string    `db:"property_id"`
	CustomerID   string    `db:"customer_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Status       Status    `db:"status"`
	TotalPrice   float64   `db:"total_price"`
	model.Metadata
}

func (b Booking) Nights() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}

// BookingDetail is a booking joined with its property and, once paid, its payment.
type BookingDetail struct {
	Booking
	PropertyOwnerID       string          `db:"property_owner_id"        table:"properties" column:"owner_id"`
	PropertyTitle         string          `db:"property_title"           table:"properties" column:"title"`
	PropertyLocation      string          `db:"property_location"        table:"properties" column:"location"`
	PropertyPricePerNight float64         `db:"property_price_per_night" table:"properties" column:"price_per_night"`
	PropertyImageURL      string          `db:"property_image_url"       table:"properties" column:"image_url"`
	PaymentID             sql.NullString  `db:"payment_id"               table:"payments"   column:"id"`
	PaymentAmount         sql.NullFloat64 `db:"payment_amount"           table:"payments"   column:"amount"`
	PaymentMethod         sql.NullString  `db:"payment_method"           table:"payments"   column:"payment_method"`
	PaymentStatus         sql.NullString  `db:"payment_status"           table:"payments"   column:"status"`
	PaymentCreatedAt      sql.NullTime    `db:"payment_created_at"       table:"payments"   column:"created_at"`
}

func (BookingDetail) GetJoinQuery() string {
	return fmt.Sprintf("JOIN properties ON properties.id = %[1]s.property_id LEFT JOIN payments ON payments.booking_id = %[1]s.id", TableName)
}

// CanDecide reports whether actorID may approve or reject the booking.
// Only the owner of the booked property may decide.
func CanDecide(actorID string, detail BookingDetail) bool {
	return actorID != constant.Empty && detail.PropertyOwnerID == actorID
}

// Nights counts started days between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / constant.HoursPerDay))
}

func TotalPrice(nights int, pricePerNight float64) float64 {
	return shared.RoundMoney(float64(nights) * pricePerNight)
}
