package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/ivn-dev/simple-cloud-inventory/internal/contextkeys"
)

// RequestIDHeader Заголовок, в котором возвращается идентификатор запроса.
const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware Присваивает каждому запросу уникальный идентификатор.
// Если клиент прислал свой X-Request-Id - используем его, иначе генерируем UUID.
// Идентификатор кладется в контекст и возвращается в ответном заголовке.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), contextkeys.RequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
