//go:build wireinject
// +build wireinject

package di

import (
	"tonsor/config"
	"tonsor/infras/backend"
	"tonsor/infras/jwt"
	"tonsor/infras/otel"
	"tonsor/internal/cli"
	"tonsor/internal/domains/session/store"
	"tonsor/internal/stub"
	"tonsor/permissions"
	"tonsor/transport/http"
	"tonsor/transport/http/middleware"
	"tonsor/transport/http/router"

	bookingRepository "tonsor/internal/domains/booking/repository"
	bookingService "tonsor/internal/domains/booking/service"
	directoryRepository "tonsor/internal/domains/directory/repository"
	directoryService "tonsor/internal/domains/directory/service"
	sessionRepository "tonsor/internal/domains/session/repository"
	sessionService "tonsor/internal/domains/session/service"
	slotsRepository "tonsor/internal/domains/slots/repository"
	slotsService "tonsor/internal/domains/slots/service"

	"github.com/google/wire"

	authHandler "tonsor/internal/handlers/auth"
	scheduleHandler "tonsor/internal/handlers/schedule"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	backend.New,
)

var sessionDomain = wire.NewSet(
	store.NewFromConfig,
	sessionRepository.New,
	sessionService.New,
)

var directoryDomain = wire.NewSet(
	directoryRepository.New,
	directoryService.New,
)

var slotsDomain = wire.NewSet(
	slotsRepository.New,
	slotsService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	sessionDomain,
	directoryDomain,
	slotsDomain,
	bookingDomain,
)

// InitializeApp assembles the terminal client over the remote booking
// backend.
func InitializeApp() *cli.App {
	wire.Build(
		configurations,
		infrastructures,
		domains,
		cli.New,
	)

	return &cli.App{}
}

var serverInfrastructures = wire.NewSet(
	otel.New,
	jwt.New,
	stub.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	scheduleHandler.New,
	router.New,
)

// InitializeServer assembles the in-memory development backend the client
// can be pointed at.
func InitializeServer() *http.HTTP {
	wire.Build(
		configurations,
		serverInfrastructures,
		middlewares,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
