package dto

import (
	"rental/internal/domains/booking/model"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID   string `json:"propertyId"   validate:"required,uuid"`
	CheckInDate  string `json:"checkInDate"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
}

// Dates parses the stay as UTC calendar dates.
func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.ParseInLocation(constant.DateOnlyFormat, c.CheckInDate, time.UTC)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = time.ParseInLocation(constant.DateOnlyFormat, c.CheckOutDate, time.UTC)

	return checkIn, checkOut, err
}

func (c *CreateBookingRequest) ToModel(customerID string, checkIn, checkOut time.Time, totalPrice float64) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:           uuid.NewString(),
		PropertyID:   c.PropertyID,
		CustomerID:   customerID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       model.StatusPending,
		TotalPrice:   totalPrice,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}
}

type UpdateStatusRequest struct {
	Status model.Status `db:"status"`
}

type PropertySummary struct {
	ID            string  `json:"id"`
	OwnerID       string  `json:"ownerId"`
	Title         string  `json:"title"`
	Location      string  `json:"location"`
	PricePerNight float64 `json:"pricePerNight"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}

type PaymentSummary struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Status        string  `json:"status"`
	PaidAt        string  `json:"paidAt"`
}

type BookingResponse struct {
	ID           string           `json:"id"`
	PropertyID   string           `json:"propertyId"`
	CustomerID   string           `json:"customerId"`
	CheckInDate  string           `json:"checkInDate"`
	CheckOutDate string           `json:"checkOutDate"`
	Nights       int              `json:"nights"`
	Status       string           `json:"status"`
	TotalPrice   float64          `json:"totalPrice"`
	Property     *PropertySummary `json:"property,omitempty"`
	Payment      *PaymentSummary  `json:"payment,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.CustomerID = model.CustomerID
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights()
	r.Status = string(model.Status)
	r.TotalPrice = model.TotalPrice
	r.Metadata.FromModel(model.Metadata)
}

func (r *BookingResponse) FromDetail(detail model.BookingDetail) {
	r.FromModel(detail.Booking)

	r.Property = &PropertySummary{
		ID:            detail.PropertyID,
		OwnerID:       detail.PropertyOwnerID,
		Title:         detail.PropertyTitle,
		Location:      detail.PropertyLocation,
		PricePerNight: detail.PropertyPricePerNight,
		ImageURL:      detail.PropertyImageURL,
	}

	if detail.PaymentID.Valid {
		r.Payment = &PaymentSummary{
			ID:            detail.PaymentID.String,
			Amount:        detail.PaymentAmount.Float64,
			PaymentMethod: detail.PaymentMethod.String,
			Status:        detail.PaymentStatus.String,
			PaidAt:        timezone.Format(detail.PaymentCreatedAt.Time, constant.DateFormat),
		}
	}
}

func FromDetails(details []model.BookingDetail) []BookingResponse {
	res := make([]BookingResponse, len(details))
	for i, detail := range details {
		res[i].FromDetail(detail)
	}

	return res
}
