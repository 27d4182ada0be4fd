package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
)

// Claims Полезная нагрузка JWT-токена.
type Claims struct {
	jwt.RegisteredClaims
	Login  string `json:"login"`
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// TokenExp Время жизни токена.
const TokenExp = 7 * 24 * time.Hour

// CookieName Имя куки с JWT-токеном.
const CookieName = "JWT"

// JWTTokenBuilder Реализация TokenBuilder на базе golang-jwt.
type JWTTokenBuilder struct{}

// NewJWTTokenBuilder Конструктор JWTTokenBuilder.
func NewJWTTokenBuilder() *JWTTokenBuilder {
	return &JWTTokenBuilder{}
}

// BuildJWTToken Создание JWT-токена с логином, ID и ролью пользователя.
func (b *JWTTokenBuilder) BuildJWTToken(user *models.User, JWTSecretKey string) (string, error) {
	// создаем экземпляр структуры, которую будем записывать в токен
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
		},
		Login:  user.Login,
		UserID: user.ID,
		Role:   user.Role,
	}

	// создаем токен с claims
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// подписываем секретным ключом и возвращаем токен в виде строки
	tokenString, err := token.SignedString([]byte(JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("не удалось подписать токен: %w", err)
	}

	return tokenString, nil
}

// GetClaims Распарсивание JWT-токена и получение Claims.
func (b *JWTTokenBuilder) GetClaims(tokenString, JWTSecretKey string) (*Claims, error) {
	// создаем пустой экземпляр Claims, куда будем распарсивать токен
	claims := &Claims{}

	// распарсиваем токен, проверяя на метод подписи
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("неверный метод подписи: %v", t.Header["alg"])
		}

		return []byte(JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	// проверяем токен на валидность
	if !token.Valid {
		return nil, fmt.Errorf("токен недействителен")
	}

	return claims, nil
}

// CreateCookie Создание и установка куки с JWT-токеном.
func CreateCookie(w http.ResponseWriter, tokenString string) {
	cookie := http.Cookie{
		Name:    CookieName,
		Value:   tokenString,
		Expires: time.Now().Add(TokenExp),
		Path:    "/",
	}

	http.SetCookie(w, &cookie)
}

// ExtractToken Извлечение токена из запроса: сперва из куки "JWT",
// затем из заголовка Authorization (Bearer). Клиент без ambient-состояния
// может явно передавать токен с каждым запросом.
func ExtractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):], nil
	}

	return "", fmt.Errorf("токен не передан")
}
