package user

import (
	"net/http"
	"rental/infras/otel"
	"rental/internal/domains/user/service"
	"rental/shared/constant"
	"rental/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/me", handler.Me)
	})
}

// Me returns the authenticated user's profile.
// @Summary Get the current user
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.UserResponse] "Current user"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Me(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
