package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental/config"
	"rental/infras/otel"
	"rental/internal/domains/booking/event"
	"rental/internal/domains/booking/model"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/repository"
	propertyModel "rental/internal/domains/property/model"
	propertyRepo "rental/internal/domains/property/repository"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	errBookingNotFound  = "booking not found"
	errPropertyNotFound = "property not found"
	errInvalidStay      = "check-out date must be after check-in date"
	errDatesOverlap     = "property is already booked for the selected dates"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, customerID string) (dto.BookingResponse, error)
	Approve(ctx context.Context, id, actorID string) (dto.BookingResponse, error)
	Reject(ctx context.Context, id, actorID string) (dto.BookingResponse, error)
	ListForCustomer(ctx context.Context, customerID string) ([]dto.BookingResponse, error)
	ListForOwner(ctx context.Context, ownerID string) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	propertyRepo propertyRepo.Property
	publisher    event.Publisher
	cfg          *config.Config
	otel         otel.Otel
}

func New(repo repository.Booking, propertyRepo propertyRepo.Property, publisher event.Publisher, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:         repo,
		propertyRepo: propertyRepo,
		publisher:    publisher,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, customerID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	nights := model.Nights(checkIn, checkOut)
	if nights < 1 {
		return res, failure.BadRequestFromString(errInvalidStay) // nolint:wrapcheck
	}

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(req.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound(errPropertyNotFound) // nolint:wrapcheck
	}

	if s.cfg.App.Booking.EnforceNoOverlap {
		overlap, err := s.repo.HasOverlap(ctx, property.ID, checkIn, checkOut)
		if err != nil {
			log.Error().Err(err).Msg("failed to check overlapping bookings")

			return res, fmt.Errorf("failed to check overlapping bookings: %w", err)
		}

		if overlap {
			return res, failure.Conflict(errDatesOverlap) // nolint:wrapcheck
		}
	}

	booking := req.ToModel(customerID, checkIn, checkOut, model.TotalPrice(nights, property.PricePerNight))

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publish(ctx, event.New(event.TypeRequested, booking, customerID))

	res.FromDetail(model.BookingDetail{
		Booking:               booking,
		PropertyOwnerID:       property.OwnerID,
		PropertyTitle:         property.Title,
		PropertyLocation:      property.Location,
		PropertyPricePerNight: property.PricePerNight,
		PropertyImageURL:      property.ImageURL,
	})

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id, actorID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.decide(ctx, id, actorID, model.StatusApproved)
}

func (s *serviceImpl) Reject(ctx context.Context, id, actorID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.decide(ctx, id, actorID, model.StatusRejected)
}

// decide moves a pending booking to next on behalf of the property owner.
// The write is conditional on the status read here, so of two concurrent decisions only one lands.
func (s *serviceImpl) decide(ctx context.Context, id, actorID string, next model.Status) (res dto.BookingResponse, err error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	detail, err := s.repo.GetDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	if !model.CanDecide(actorID, detail) {
		log.Warn().Str("booking_id", id).Str("user_id", actorID).Msg("booking decision by non owner")

		return res, failure.ResourceRestrictedError
	}

	if !detail.Status.CanTransitionTo(next) {
		return res, failure.InvalidState(fmt.Sprintf("booking is %s and cannot be %s", strings.ToLower(string(detail.Status)), strings.ToLower(string(next)))) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdateStatusRequest{Status: next}, actorID)

	guard := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			filter,
			gDto.Filter{
				ArgName:  model.ArgCurrentStatus,
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(detail.Status),
				Table:    model.TableName,
			},
		},
	}

	affected, err := s.repo.UpdateRows(ctx, updatedFields, guard)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return res, failure.InvalidState("booking status changed concurrently, please retry") // nolint:wrapcheck
	}

	detail.Status = next
	detail.ModifiedBy = actorID

	if modifiedAt, ok := updatedFields[constant.FieldModifiedAt].(time.Time); ok {
		detail.ModifiedAt = modifiedAt
	}

	s.publish(ctx, event.New(event.ForStatus(next), detail.Booking, actorID))

	res.FromDetail(detail)

	return res, nil
}

func (s *serviceImpl) ListForCustomer(ctx context.Context, customerID string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForCustomer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, shared.FilterByID(customerID, model.FieldCustomerID, model.TableName))
}

func (s *serviceImpl) ListForOwner(ctx context.Context, ownerID string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, shared.FilterByID(ownerID, propertyModel.FieldOwnerID, propertyModel.TableName))
}

func (s *serviceImpl) list(ctx context.Context, filter gDto.FilterGroup) ([]dto.BookingResponse, error) {
	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	details, err := s.repo.GetDetails(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return dto.FromDetails(details), nil
}

func (s *serviceImpl) publish(ctx context.Context, evt event.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, evt); err != nil {
			log.Error().Err(err).Str("type", string(evt.Type)).Msg("booking event dropped")
		}
	}()
}
