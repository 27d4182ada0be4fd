package broadcast

import (
	"errors"
	"net/http"

	"github.com/ivn-dev/simple-cloud-inventory/internal/auth"
)

// MakeJWTTopicResolver возвращает resolver, проверяющий JWT из запроса.
// Подписка на события инвентаря доступна только аутентифицированным пользователям.
func MakeJWTTopicResolver(JWTSecretKey string, tokenBuilder auth.TokenBuilder) TopicResolver {
	return func(r *http.Request) (string, error) {
		tokenString, err := auth.ExtractToken(r)
		if err != nil {
			return "", err
		}

		claims, err := tokenBuilder.GetClaims(tokenString, JWTSecretKey)
		if err != nil {
			return "", err
		}
		if claims.UserID <= 0 {
			return "", errors.New("неверный id пользователя")
		}

		// тип потока: пока поддерживаются только события инвентаря серверов
		stream := r.URL.Query().Get("stream")
		if stream == "" {
			stream = StreamServers
		}

		if stream != StreamServers {
			return "", errors.New("неизвестный тип потока")
		}

		return stream, nil
	}
}
