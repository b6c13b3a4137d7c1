package dto

import (
	bookingModel "rental/internal/domains/booking/model"
	"rental/internal/domains/payment/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type RecordPaymentRequest struct {
	BookingID     string  `json:"bookingId"     validate:"required,uuid"`
	Amount        float64 `json:"amount"        validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,max=50"`
}

// ToModel records a settled payment. Payments are recorded, not processed, so they complete immediately.
func (r *RecordPaymentRequest) ToModel(customerID string) model.Payment {
	now := timezone.Now()

	return model.Payment{
		ID:            uuid.NewString(),
		BookingID:     r.BookingID,
		Amount:        shared.RoundMoney(r.Amount),
		PaymentMethod: strings.TrimSpace(r.PaymentMethod),
		Status:        model.StatusCompleted,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}
}

type BookingSummary struct {
	ID          string  `json:"id"`
	PropertyID  string  `json:"propertyId"`
	CheckInDate string  `json:"checkInDate"`
	TotalPrice  float64 `json:"totalPrice"`
	Status      string  `json:"status,omitempty"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"bookingId"`
	Amount        float64         `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	Booking       *BookingSummary `json:"booking,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(payment model.Payment) {
	r.ID = payment.ID
	r.BookingID = payment.BookingID
	r.Amount = payment.Amount
	r.PaymentMethod = payment.PaymentMethod
	r.Status = string(payment.Status)
	r.Metadata.FromModel(payment.Metadata)
}

func (r *PaymentResponse) WithBooking(booking bookingModel.Booking) {
	r.Booking = &BookingSummary{
		ID:          booking.ID,
		PropertyID:  booking.PropertyID,
		CheckInDate: booking.CheckInDate.Format(constant.DateOnlyFormat),
		TotalPrice:  booking.TotalPrice,
		Status:      string(booking.Status),
	}
}

func FromDetails(details []model.PaymentDetail) []PaymentResponse {
	res := make([]PaymentResponse, len(details))

	for i, detail := range details {
		res[i].FromModel(detail.Payment)
		res[i].Booking = &BookingSummary{
			ID:          detail.BookingID,
			PropertyID:  detail.BookingPropertyID,
			CheckInDate: detail.BookingCheckInDate.Format(constant.DateOnlyFormat),
			TotalPrice:  detail.BookingTotalPrice,
			Status:      detail.BookingStatus,
		}
	}

	return res
}
