package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/config"
	"rental/infras/otel/mocks"
	bookingMocks "rental/internal/domains/booking/mocks"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/service"
	propertyMocks "rental/internal/domains/property/mocks"
	propertyModel "rental/internal/domains/property/model"
	gDto "rental/shared/dto"
	"rental/shared/failure"
)

const (
	propertyID = "2f1f5d9e-6a0b-4c5e-9b1a-0d7c2b8e4f11"
	ownerID    = "owner-1"
	customerID = "customer-1"
	bookingID  = "booking-1"
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	property  *propertyMocks.MockProperty
	publisher *bookingMocks.MockPublisher
	cfg       *config.Config
	svc       service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		property:  propertyMocks.NewMockProperty(ctrl),
		publisher: bookingMocks.NewMockPublisher(ctrl),
		cfg:       &config.Config{},
	}

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.property, f.publisher, f.cfg, mocks.NewOtel())

	return f
}

func property() propertyModel.Property {
	return propertyModel.Property{
		ID:            propertyID,
		OwnerID:       ownerID,
		Title:         "Beach house",
		Location:      "Bali",
		PricePerNight: 100,
		Availability:  true,
	}
}

func pendingDetail() model.BookingDetail {
	return model.BookingDetail{
		Booking: model.Booking{
			ID:           bookingID,
			PropertyID:   propertyID,
			CustomerID:   customerID,
			CheckInDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			Status:       model.StatusPending,
			TotalPrice:   300,
		},
		PropertyOwnerID:       ownerID,
		PropertyTitle:         "Beach house",
		PropertyPricePerNight: 100,
	}
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateBookingRequest{PropertyID: propertyID, CheckInDate: "2024-01-01", CheckOutDate: "2024-01-04"}

	var inserted model.Booking

	f.property.EXPECT().Get(gomock.Any(), gomock.Any()).Return(property(), nil)
	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) error {
			inserted = booking

			return nil
		})

	res, err := f.svc.Create(context.Background(), req, customerID)

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, inserted.Status)
	assert.Equal(t, customerID, inserted.CustomerID)
	assert.InDelta(t, 300.0, inserted.TotalPrice, 0.001)
	assert.Equal(t, string(model.StatusPending), res.Status)
	assert.Equal(t, 3, res.Nights)
	assert.InDelta(t, 300.0, res.TotalPrice, 0.001)
	assert.Equal(t, "2024-01-01", res.CheckInDate)
	assert.Equal(t, "2024-01-04", res.CheckOutDate)
	require.NotNil(t, res.Property)
	assert.Equal(t, ownerID, res.Property.OwnerID)
}

func TestBookingService_Create_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateBookingRequest
		overlap  bool
		mock     func(f *fixture)
		wantCode int
	}{
		{
			name:     "same day stay",
			req:      dto.CreateBookingRequest{PropertyID: propertyID, CheckInDate: "2024-01-05", CheckOutDate: "2024-01-05"},
			mock:     func(_ *fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "check out before check in",
			req:      dto.CreateBookingRequest{PropertyID: propertyID, CheckInDate: "2024-01-05", CheckOutDate: "2024-01-02"},
			mock:     func(_ *fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unparseable date",
			req:      dto.CreateBookingRequest{PropertyID: propertyID, CheckInDate: "2024-13-01", CheckOutDate: "2024-01-02"},
			mock:     func(_ *fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown property",
			req:  dto.CreateBookingRequest{PropertyID: propertyID, CheckInDate: "2024-01-01", CheckOutDate: "2024-01-02"},
			mock: func(f *fixture) {
				f.property.EXPECT().Get(gomock.Any(), gomock.Any()).Return(propertyModel.Property{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:    "overlapping stay",
			req:     dto.CreateBookingRequest{PropertyID: propertyID, CheckInDate: "2024-01-02", CheckOutDate: "2024-01-03"},
			overlap: true,
			mock: func(f *fixture) {
				f.property.EXPECT().Get(gomock.Any(), gomock.Any()).Return(property(), nil)
				f.repo.EXPECT().HasOverlap(gomock.Any(), propertyID, gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "storage failure",
			req:  dto.CreateBookingRequest{PropertyID: propertyID, CheckInDate: "2024-01-01", CheckOutDate: "2024-01-02"},
			mock: func(f *fixture) {
				f.property.EXPECT().Get(gomock.Any(), gomock.Any()).Return(property(), nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.App.Booking.EnforceNoOverlap = tt.overlap
			tt.mock(f)

			_, err := f.svc.Create(context.Background(), tt.req, customerID)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Create_OverlapAllowed(t *testing.T) {
	f := newFixture(t)
	f.cfg.App.Booking.EnforceNoOverlap = true

	f.property.EXPECT().Get(gomock.Any(), gomock.Any()).Return(property(), nil)
	f.repo.EXPECT().HasOverlap(gomock.Any(), propertyID, gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	req := dto.CreateBookingRequest{PropertyID: propertyID, CheckInDate: "2024-01-04", CheckOutDate: "2024-01-06"}

	res, err := f.svc.Create(context.Background(), req, customerID)

	require.NoError(t, err)
	assert.InDelta(t, 200.0, res.TotalPrice, 0.001)
}

func TestBookingService_Approve(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(pendingDetail(), nil)
	f.repo.EXPECT().
		UpdateRows(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
			assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])
			assert.Equal(t, ownerID, fields["modified_by"])

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, model.ArgCurrentStatus)
			assert.Equal(t, string(model.StatusPending), args[model.ArgCurrentStatus])

			return 1, nil
		})

	res, err := f.svc.Approve(context.Background(), bookingID, ownerID)

	require.NoError(t, err)
	assert.Equal(t, string(model.StatusApproved), res.Status)
	assert.Equal(t, bookingID, res.ID)
}

func TestBookingService_Reject(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(pendingDetail(), nil)
	f.repo.EXPECT().UpdateRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

	res, err := f.svc.Reject(context.Background(), bookingID, ownerID)

	require.NoError(t, err)
	assert.Equal(t, string(model.StatusRejected), res.Status)
}

func TestBookingService_Decide_Refused(t *testing.T) {
	withStatus := func(status model.Status) model.BookingDetail {
		detail := pendingDetail()
		detail.Status = status

		return detail
	}

	tests := []struct {
		name     string
		actorID  string
		reject   bool
		mock     func(f *fixture)
		wantCode int
	}{
		{
			name:    "already approved",
			actorID: ownerID,
			mock: func(f *fixture) {
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(withStatus(model.StatusApproved), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:    "reject after approval",
			actorID: ownerID,
			reject:  true,
			mock: func(f *fixture) {
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(withStatus(model.StatusApproved), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:    "completed booking",
			actorID: ownerID,
			mock: func(f *fixture) {
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(withStatus(model.StatusCompleted), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:    "not the property owner",
			actorID: "owner-2",
			mock: func(f *fixture) {
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(pendingDetail(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "customer deciding own booking",
			actorID: customerID,
			mock: func(f *fixture) {
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(pendingDetail(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "booking not found",
			actorID: ownerID,
			mock: func(f *fixture) {
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.BookingDetail{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:    "lost concurrent decision",
			actorID: ownerID,
			mock: func(f *fixture) {
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(pendingDetail(), nil)
				f.repo.EXPECT().UpdateRows(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:    "storage failure",
			actorID: ownerID,
			mock: func(f *fixture) {
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.BookingDetail{}, errors.New("timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mock(f)

			var err error
			if tt.reject {
				_, err = f.svc.Reject(context.Background(), bookingID, tt.actorID)
			} else {
				_, err = f.svc.Approve(context.Background(), bookingID, tt.actorID)
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_ListForCustomer(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetDetails(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error) {
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "bookings.customer_id")
			assert.Contains(t, args, model.FieldCustomerID)

			return []model.BookingDetail{pendingDetail()}, nil
		})

	res, err := f.svc.ListForCustomer(context.Background(), customerID)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, customerID, res[0].CustomerID)
}

func TestBookingService_ListForOwner(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetDetails(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error) {
			where, _ := filter.GetWhereClause()
			assert.Contains(t, where, "properties.owner_id")

			return nil, nil
		})

	res, err := f.svc.ListForOwner(context.Background(), ownerID)

	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestBookingService_ListForOwner_Error(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetDetails(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := f.svc.ListForOwner(context.Background(), ownerID)

	require.Error(t, err)
}
