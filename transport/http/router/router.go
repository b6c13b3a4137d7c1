package router

import (
	"rental/internal/handlers/auth"
	"rental/internal/handlers/booking"
	"rental/internal/handlers/payment"
	"rental/internal/handlers/property"
	"rental/internal/handlers/user"
	"rental/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Property property.Handler
	Booking  booking.Handler
	Payment  payment.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
}

type Router struct {
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Middlewares.App.RateLimit())
		routerGroup.Use(r.Middlewares.AuthRole.APIKey)
		routerGroup.Use(r.Middlewares.AuthRole.Auth)
		routerGroup.Use(r.Middlewares.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, middlewares Middlewares) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
	}
}
