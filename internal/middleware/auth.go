package middleware

import (
	"net/http"

	"github.com/ivn-dev/simple-cloud-inventory/internal/api/response"
	"github.com/ivn-dev/simple-cloud-inventory/internal/contextkeys"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
)

// RequireAuthMiddleware проверяет наличие логина в контексте.
func RequireAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login, ok := r.Context().Value(contextkeys.Login).(string)
		if !ok || login == "" {
			logger.Log.Error("Не удалось получить логин из контекста")
			response.ErrorJSON(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdminMiddleware проверяет, что аутентифицированный пользователь имеет роль admin.
// Аутентифицированный пользователь без требуемой роли получает 403.
func RequireAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(contextkeys.Role).(string)
		if !ok || role != models.RoleAdmin {
			creds := models.GetContextCreds(r.Context())
			logger.Log.Warn("Попытка доступа без требуемой роли",
				logger.String("login", creds.Login),
				logger.String("role", role))
			response.ErrorJSON(w, http.StatusForbidden, "Требуется роль администратора")
			return
		}

		next.ServeHTTP(w, r)
	})
}
