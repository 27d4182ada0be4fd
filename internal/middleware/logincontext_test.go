package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/ivn-dev/simple-cloud-inventory/internal/auth"
	authMocks "github.com/ivn-dev/simple-cloud-inventory/internal/auth/mocks"
	"github.com/ivn-dev/simple-cloud-inventory/internal/contextkeys"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
)

func init() {
	logger.InitLogger("error", "stdout")
}

// TestLoginToContextMiddlewareSuccess Проверяет успешное добавление идентичности в контекст.
func TestLoginToContextMiddlewareSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokenBuilder := authMocks.NewMockTokenBuilder(ctrl)
	secretKey := "test-secret-key"

	mockTokenBuilder.EXPECT().
		GetClaims("valid-token", secretKey).
		Return(&auth.Claims{UserID: 123, Login: "testuser", Role: models.RoleAdmin}, nil)

	var capturedLogin, capturedRole string
	var capturedUserID int64
	nextCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true

		login, ok := r.Context().Value(contextkeys.Login).(string)
		assert.True(t, ok, "логин должен быть в контексте")
		capturedLogin = login

		userID, ok := r.Context().Value(contextkeys.UserID).(int64)
		assert.True(t, ok, "ID пользователя должен быть в контексте")
		capturedUserID = userID

		role, ok := r.Context().Value(contextkeys.Role).(string)
		assert.True(t, ok, "роль должна быть в контексте")
		capturedRole = role

		w.WriteHeader(http.StatusOK)
	})

	middleware := LoginToContextMiddleware(secretKey, mockTokenBuilder)
	handler := middleware(nextHandler)

	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.AddCookie(&http.Cookie{Name: "JWT", Value: "valid-token"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.True(t, nextCalled, "next handler должен быть вызван")
	assert.Equal(t, "testuser", capturedLogin)
	assert.Equal(t, int64(123), capturedUserID)
	assert.Equal(t, models.RoleAdmin, capturedRole)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestLoginToContextMiddlewareNoToken Проверяет запрос без токена.
func TestLoginToContextMiddlewareNoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokenBuilder := authMocks.NewMockTokenBuilder(ctrl)

	// GetClaims НЕ должен быть вызван, токена в запросе нет
	nextCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := LoginToContextMiddleware("secret", mockTokenBuilder)
	handler := middleware(nextHandler)

	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.False(t, nextCalled, "next handler НЕ должен быть вызван без токена")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "не аутентифицирован")
}

// TestLoginToContextMiddlewareInvalidToken Проверяет запрос с невалидным токеном.
func TestLoginToContextMiddlewareInvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokenBuilder := authMocks.NewMockTokenBuilder(ctrl)
	secretKey := "test-secret-key"

	mockTokenBuilder.EXPECT().
		GetClaims("invalid-token", secretKey).
		Return(nil, errors.New("invalid token"))

	nextCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := LoginToContextMiddleware(secretKey, mockTokenBuilder)
	handler := middleware(nextHandler)

	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.AddCookie(&http.Cookie{Name: "JWT", Value: "invalid-token"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.False(t, nextCalled, "next handler НЕ должен быть вызван с невалидным токеном")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "токен")
}

// TestLoginToContextMiddlewareBearerHeader Проверяет извлечение токена из заголовка Authorization.
func TestLoginToContextMiddlewareBearerHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokenBuilder := authMocks.NewMockTokenBuilder(ctrl)
	secretKey := "test-secret-key"

	mockTokenBuilder.EXPECT().
		GetClaims("header-token", secretKey).
		Return(&auth.Claims{UserID: 1, Login: "user", Role: models.RoleUser}, nil)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := LoginToContextMiddleware(secretKey, mockTokenBuilder)
	handler := middleware(nextHandler)

	// токен передается в заголовке, а не в куке
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
