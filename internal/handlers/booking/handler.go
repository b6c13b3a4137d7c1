package booking

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/booking/model/dto"
	"rental/internal/domains/booking/service"
	"rental/shared/constant"
	"rental/shared/validator"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Patch("/{id}/approve", handler.ApproveBooking)
		routerGroup.Patch("/{id}/reject", handler.RejectBooking)
		routerGroup.Get("/customer/list", handler.GetCustomerBookings)
		routerGroup.Get("/owner/list", handler.GetOwnerBookings)
	})
}

// CreateBooking requests a stay at a property for the authenticated customer.
// @Summary Request a booking
// @Description Dates are YYYY-MM-DD. The stay must be at least one night.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Pending booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Create(ctx, req, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking requested by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// ApproveBooking accepts a pending booking on one of the caller's properties.
// @Summary Approve a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Approved booking"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/approve [patch]
// @Security BearerAuth
func (handler *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Approve(ctx, id, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking approved by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// RejectBooking declines a pending booking on one of the caller's properties.
// @Summary Reject a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Rejected booking"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Reject(ctx, id, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking rejected by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// GetCustomerBookings lists the caller's own bookings.
// @Summary List my bookings
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/customer/list [get]
// @Security BearerAuth
func (handler *Handler) GetCustomerBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerBookings")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.ListForCustomer(ctx, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetOwnerBookings lists bookings on the caller's properties.
// @Summary List bookings on my properties
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/owner/list [get]
// @Security BearerAuth
func (handler *Handler) GetOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerBookings")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.ListForOwner(ctx, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owner bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
