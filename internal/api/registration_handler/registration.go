package registration_handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ivn-dev/simple-cloud-inventory/internal/api/response"
	"github.com/ivn-dev/simple-cloud-inventory/internal/errs"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage"
)

// RegistrationHandler Обработчик регистрации.
// Маршрут регистрации закрыт middleware-ами аутентификации и роли admin:
// новые учетные записи создает только администратор.
type RegistrationHandler struct {
	storage storage.Storage
}

// NewRegistrationHandler Конструктор RegistrationHandler.
func NewRegistrationHandler(storage storage.Storage) *RegistrationHandler {
	return &RegistrationHandler{
		storage: storage,
	}
}

// UserRegistration Регистрация пользователей.
func (h *RegistrationHandler) UserRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Log.Error("Ошибка чтения тела запроса", logger.String("error", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, "Ошибка чтения тела запроса")
		return
	}

	var registerRequest models.RegisterRequest

	err = json.Unmarshal(data, &registerRequest)
	if err != nil {
		logger.Log.Error("Ошибка декодирования тела запроса при регистрации", logger.String("error", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	if err := registerRequest.Validate(); err != nil {
		logger.Log.Error("Ошибка при валидации регистрационных данных", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user := models.User{
		Login:    registerRequest.Login,
		Email:    registerRequest.Email,
		Password: registerRequest.Password,
		Role:     registerRequest.Role,
	}

	created, err := h.storage.CreateUser(ctx, &user)
	var ErrLoginIsTaken *errs.ErrLoginIsTaken
	if err != nil {
		switch {
		case errors.As(err, &ErrLoginIsTaken):
			logger.Log.Info("Такой пользователь уже существует",
				logger.String("login", ErrLoginIsTaken.Login),
				logger.String("err", ErrLoginIsTaken.Err.Error()))
			response.ErrorJSON(w, http.StatusConflict, "Пользователь с таким логином или email уже существует")
			return
		default:
			logger.Log.Error("Ошибка при создании пользователя", logger.String("err", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	admin := models.GetContextCreds(ctx)
	logger.Log.Debug("Успешная регистрация пользователя",
		logger.String("login", created.Login),
		logger.String("role", created.Role),
		logger.String("created_by", admin.Login))

	response.JSON(w, http.StatusCreated, created)
}
