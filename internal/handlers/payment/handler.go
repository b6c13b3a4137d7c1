package payment

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/payment/model/dto"
	"rental/internal/domains/payment/service"
	"rental/shared/constant"
	"rental/shared/validator"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RecordPayment)
		routerGroup.Get("/", handler.GetPayments)
	})
}

// RecordPayment settles an approved booking and completes it.
// @Summary Pay for a booking
// @Description The amount must cover the booking's total price. A booking is paid once.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.RecordPaymentRequest true "Record Payment Request"
// @Success 201 {object} response.Data[dto.PaymentResponse] "Recorded payment"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordPayment")
	defer scope.End()

	req := dto.RecordPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Record(ctx, req, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment recorded by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetPayments lists payments on the caller's bookings.
// @Summary List my payments
// @Tags Payment
// @Produce json
// @Success 200 {object} response.Data[[]dto.PaymentResponse] "Payments"
// @Failure 500 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.ListForCustomer(ctx, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
