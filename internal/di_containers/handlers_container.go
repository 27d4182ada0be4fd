package di_containers

import (
	"github.com/ivn-dev/simple-cloud-inventory/internal/api/app_handler"
	"github.com/ivn-dev/simple-cloud-inventory/internal/api/authorization_handler"
	"github.com/ivn-dev/simple-cloud-inventory/internal/api/health_handler"
	"github.com/ivn-dev/simple-cloud-inventory/internal/api/registration_handler"
	"github.com/ivn-dev/simple-cloud-inventory/internal/api/server_handler"
	"github.com/ivn-dev/simple-cloud-inventory/internal/auth"
	"github.com/ivn-dev/simple-cloud-inventory/internal/broadcast"
	"github.com/ivn-dev/simple-cloud-inventory/internal/config"
	"github.com/ivn-dev/simple-cloud-inventory/internal/netutils"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage"
)

// HandlersContainer Контейнер со всеми хендлерами приложения (и их зависимостями).
type HandlersContainer struct {
	ServerHandler        *server_handler.ServerHandler
	RegistrationHandler  *registration_handler.RegistrationHandler
	AuthorizationHandler *authorization_handler.AuthorizationHandler
	HealthHandler        *health_handler.HealthHandler
	AppHandler           *app_handler.AppHandler
	TokenBuilder         auth.TokenBuilder
	Config               *config.Config
}

// NewHandlersContainer Конструктор контейнера с зависимостями для хендлеров.
func NewHandlersContainer(storage storage.Storage, srvConfig *config.Config, broadcaster broadcast.Broadcaster, tokenBuilder auth.TokenBuilder, netChecker netutils.Checker) *HandlersContainer {
	serverHandler := server_handler.NewServerHandler(storage, broadcaster)
	registrationHandler := registration_handler.NewRegistrationHandler(storage)
	authorizationHandler := authorization_handler.NewAuthorizationHandler(storage, tokenBuilder, srvConfig.JWTSecretKey)
	healthHandler := health_handler.NewHealthHandler(storage, netChecker)
	appHandler := app_handler.NewAppHandler(srvConfig.JWTSecretKey, broadcaster)

	return &HandlersContainer{
		ServerHandler:        serverHandler,
		RegistrationHandler:  registrationHandler,
		AuthorizationHandler: authorizationHandler,
		HealthHandler:        healthHandler,
		AppHandler:           appHandler,
		TokenBuilder:         tokenBuilder,
		Config:               srvConfig,
	}
}
