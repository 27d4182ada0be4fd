package authorization_handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ivn-dev/simple-cloud-inventory/internal/api/response"
	"github.com/ivn-dev/simple-cloud-inventory/internal/auth"
	"github.com/ivn-dev/simple-cloud-inventory/internal/errs"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage"
)

// AuthorizationHandler Обработчик авторизации.
type AuthorizationHandler struct {
	storage      storage.Storage
	tokenBuilder auth.TokenBuilder
	JWTSecretKey string
}

// NewAuthorizationHandler Конструктор AuthorizationHandler.
func NewAuthorizationHandler(storage storage.Storage, tokenBuilder auth.TokenBuilder, JWTSecretKey string) *AuthorizationHandler {
	return &AuthorizationHandler{
		storage:      storage,
		tokenBuilder: tokenBuilder,
		JWTSecretKey: JWTSecretKey,
	}
}

// UserAuthorization Авторизация пользователей по логину (или email) и паролю.
// Ответ об ошибке одинаков для неизвестного логина и неверного пароля.
func (h *AuthorizationHandler) UserAuthorization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Log.Error("Ошибка чтения тела запроса", logger.String("error", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка чтения тела запроса")
		return
	}

	var loginRequest models.LoginRequest
	err = json.Unmarshal(body, &loginRequest)
	if err != nil {
		logger.Log.Error("Ошибка анмаршаллинга данных в модель LoginRequest", logger.String("error", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	if err := loginRequest.Validate(); err != nil {
		logger.Log.Error("Ошибка при валидации данных пользователя", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	verifiedUser, err := h.storage.GetUser(ctx, loginRequest.Login, loginRequest.Password)
	var ErrWrongLoginOrPassword *errs.ErrWrongLoginOrPassword
	switch {
	case errors.As(err, &ErrWrongLoginOrPassword):
		logger.Log.Error("Неверная пара логин/пароль",
			logger.String("err", ErrWrongLoginOrPassword.Err.Error()))
		response.ErrorJSON(w, http.StatusUnauthorized, "Неверная пара логин/пароль")
		return
	case err != nil:
		logger.Log.Error("Внутренняя ошибка сервера", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	tokenString, err := h.tokenBuilder.BuildJWTToken(verifiedUser, h.JWTSecretKey)
	if err != nil {
		logger.Log.Debug("Ошибка при создании JWT-токена", logger.String("jwt-token", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка при создании JWT-токена")
		return
	}

	auth.CreateCookie(w, tokenString)

	logger.Log.Debug("Успешная авторизация пользователя", logger.String("login", verifiedUser.Login))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response.AuthResponse{
		Message: "Пользователь авторизован",
		Login:   verifiedUser.Login,
		Role:    verifiedUser.Role,
		Token:   tokenString,
	})
	if err != nil {
		response.ErrorJSON(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}
}

// GetMe Возвращает идентичность текущего пользователя из токена.
func (h *AuthorizationHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	creds := models.GetContextCreds(r.Context())

	response.JSON(w, http.StatusOK, map[string]any{
		"id":    creds.UserID,
		"login": creds.Login,
		"role":  creds.Role,
	})
}
