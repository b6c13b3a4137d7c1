package service

import (
	"context"
	"errors"
	"fmt"

	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/internal/domains/booking/event"
	bookingModel "rental/internal/domains/booking/model"
	bookingDto "rental/internal/domains/booking/model/dto"
	bookingRepo "rental/internal/domains/booking/repository"
	"rental/internal/domains/payment/model/dto"
	"rental/internal/domains/payment/repository"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	"rental/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	errBookingNotFound = "booking not found"
	errNotApproved     = "booking must be approved before payment"
	errAlreadyPaid     = "booking has already been paid"
	errAmountTooLow    = "payment amount is less than the total price"
)

type Payment interface {
	Record(ctx context.Context, req dto.RecordPaymentRequest, customerID string) (dto.PaymentResponse, error)
	ListForCustomer(ctx context.Context, customerID string) ([]dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	transactor  postgres.Transactor
	publisher   event.Publisher
	otel        otel.Otel
}

func New(repo repository.Payment, bookingRepo bookingRepo.Booking, transactor postgres.Transactor, publisher event.Publisher, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		transactor:  transactor,
		publisher:   publisher,
		otel:        otel,
	}
}

// Record settles an approved booking. The booking row stays locked until the payment
// and the completion are both written, so a booking is paid at most once.
func (s *serviceImpl) Record(ctx context.Context, req dto.RecordPaymentRequest, customerID string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Record")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payment := req.ToModel(customerID)

	var booking bookingModel.Booking

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		filter := shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName)

		booking, err = s.bookingRepo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound(errBookingNotFound)
		}

		if booking.CustomerID != customerID {
			log.Warn().Str("booking_id", booking.ID).Str("user_id", customerID).Msg("payment by non customer")

			return failure.ResourceRestrictedError
		}

		if booking.Status == bookingModel.StatusCompleted {
			return failure.InvalidState(errAlreadyPaid)
		}

		if !booking.Status.CanTransitionTo(bookingModel.StatusCompleted) {
			return failure.InvalidState(errNotApproved)
		}

		if payment.Amount < booking.TotalPrice {
			return failure.BadRequestFromString(errAmountTooLow)
		}

		if err := s.repo.InsertTx(ctx, tx, payment); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
				return failure.InvalidState(errAlreadyPaid)
			}

			log.Error().Err(err).Msg("failed to record payment")

			return fmt.Errorf("failed to record payment: %w", err)
		}

		updatedFields := shared.TransformFields(bookingDto.UpdateStatusRequest{Status: bookingModel.StatusCompleted}, customerID)

		guard := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				filter,
				gDto.Filter{
					ArgName:  bookingModel.ArgCurrentStatus,
					Field:    bookingModel.FieldStatus,
					Operator: gDto.FilterOperatorEq,
					Value:    string(bookingModel.StatusApproved),
					Table:    bookingModel.TableName,
				},
			},
		}

		affected, err := s.bookingRepo.UpdateRowsTx(ctx, tx, updatedFields, guard)
		if err != nil {
			log.Error().Err(err).Msg("failed to complete booking")

			return fmt.Errorf("failed to complete booking: %w", err)
		}

		if affected == 0 {
			return failure.InvalidState(errNotApproved)
		}

		booking.Status = bookingModel.StatusCompleted

		return nil
	})
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, event.New(event.TypeCompleted, booking, customerID)); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("booking event dropped")
		}
	}()

	res.FromModel(payment)
	res.WithBooking(booking)

	return res, nil
}

func (s *serviceImpl) ListForCustomer(ctx context.Context, customerID string) (res []dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForCustomer")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		SortBy:  "payments." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	details, err := s.repo.GetDetails(ctx, params, shared.FilterByID(customerID, bookingModel.FieldCustomerID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return nil, fmt.Errorf("failed to get payments: %w", err)
	}

	return dto.FromDetails(details), nil
}
