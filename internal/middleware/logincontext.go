package middleware

import (
	"context"
	"net/http"

	"github.com/ivn-dev/simple-cloud-inventory/internal/api/response"
	"github.com/ivn-dev/simple-cloud-inventory/internal/auth"
	"github.com/ivn-dev/simple-cloud-inventory/internal/contextkeys"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
)

// LoginToContextMiddleware Middleware, который извлекает JWT-токен из запроса
// (кука "JWT" или заголовок Authorization), проверяет его и добавляет
// логин, ID и роль пользователя в контекст запроса.
// Это позволяет в дальнейшем получить идентичность из контекста (request.Context) в других обработчиках.
func LoginToContextMiddleware(JWTSecretKey string, tokenBuilder auth.TokenBuilder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := auth.ExtractToken(r)
			if err != nil {
				// если токен не найден — считаем, что пользователь не аутентифицирован
				logger.Log.Error("Пользователь не аутентифицирован", logger.String("err", err.Error()))
				response.ErrorJSON(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
				return
			}

			claims, err := tokenBuilder.GetClaims(tokenString, JWTSecretKey)
			if err != nil {
				// невалидный или просроченный токен
				logger.Log.Error("Ошибка идентификации пользователя", logger.String("err", err.Error()))
				response.ErrorJSON(w, http.StatusUnauthorized, "Невалидный или просроченный токен")
				return
			}

			// добавляем идентичность в контекст запроса
			ctx := context.WithValue(r.Context(), contextkeys.Login, claims.Login)
			ctx = context.WithValue(ctx, contextkeys.UserID, claims.UserID)
			ctx = context.WithValue(ctx, contextkeys.Role, claims.Role)
			r = r.WithContext(ctx)

			// передаём управление следующему обработчику, уже с модифицированным запросом
			next.ServeHTTP(w, r)
		})
	}
}
