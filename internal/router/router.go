package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/ivn-dev/simple-cloud-inventory/internal/di_containers"
	"github.com/ivn-dev/simple-cloud-inventory/internal/middleware"
)

// Router Роутер.
func Router(h *di_containers.HandlersContainer) chi.Router {
	router := chi.NewRouter()

	// общие middleware: идентификатор запроса, логгер, CORS
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LogMiddleware)
	router.Use(middleware.MakeCorsMiddleware(h.Config.FrontendOrigin))

	// публичные маршруты
	router.Post("/api/user/login", h.AuthorizationHandler.UserAuthorization)
	router.Get("/api/health", h.HealthHandler.GetHealth)

	// маршруты, требующие авторизацию
	router.Group(func(r chi.Router) {

		// middleware для всех приватных маршрутов
		r.Use(middleware.LoginToContextMiddleware(h.Config.JWTSecretKey, h.TokenBuilder))
		r.Use(middleware.RequireAuthMiddleware)

		r.Get("/api/user/me", h.AuthorizationHandler.GetMe)

		// регистрация новых пользователей доступна только администратору
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminMiddleware)
			r.Post("/api/user/register", h.RegistrationHandler.UserRegistration)
		})

		r.Route("/api/servers", func(r chi.Router) {

			// маршруты БЕЗ ID параметра
			r.Get("/", h.ServerHandler.ListServers)          // список серверов
			r.Post("/", h.ServerHandler.AddServer)           // создание сервера
			r.Post("/bulk-delete", h.ServerHandler.BulkDelServers) // массовое удаление

			// маршруты С ID параметром
			r.Route("/{serverID}", func(r chi.Router) {

				// извлекаем ID из параметров роутера
				r.Use(middleware.ParseServerIDMiddleware)

				r.Get("/", h.ServerHandler.GetServer)    // получение сервера
				r.Put("/", h.ServerHandler.EditServer)   // редактирование сервера
				r.Delete("/", h.ServerHandler.DelServer) // удаление сервера

				r.Get("/reachability", h.HealthHandler.ServerReachability) // проверка доступности по сети
			})
		})
	})

	// поток событий инвентаря для фронтенда (SSE)
	router.Mount("/events", h.AppHandler.Broadcaster.HTTPHandler())

	return router
}
