//go:build wireinject
// +build wireinject

package di

import (
	"rental/config"
	"rental/infras/jwt"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/infras/redis"
	"rental/infras/s3"
	"rental/permissions"
	"rental/shared/cache"
	"rental/transport/http"
	"rental/transport/http/middleware"
	"rental/transport/http/router"

	"github.com/google/wire"

	authService "rental/internal/domains/auth/service"
	bookingEvent "rental/internal/domains/booking/event"
	bookingRepository "rental/internal/domains/booking/repository"
	bookingService "rental/internal/domains/booking/service"
	paymentRepository "rental/internal/domains/payment/repository"
	paymentService "rental/internal/domains/payment/service"
	propertyRepository "rental/internal/domains/property/repository"
	propertyService "rental/internal/domains/property/service"
	userRepository "rental/internal/domains/user/repository"
	userService "rental/internal/domains/user/service"
	authHandler "rental/internal/handlers/auth"
	bookingHandler "rental/internal/handlers/booking"
	paymentHandler "rental/internal/handlers/payment"
	propertyHandler "rental/internal/handlers/property"
	userHandler "rental/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingEvent.NewPublisher,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	propertyDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	wire.Struct(new(router.Middlewares), "*"),
	authHandler.New,
	userHandler.New,
	propertyHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
