package response

import (
	"encoding/json"
	"net/http"

	"github.com/ivn-dev/simple-cloud-inventory/internal/errs"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
)

// AuthResponse Успешный ответ при регистрации или авторизации пользователя.
type AuthResponse struct {
	Message string `json:"message"`
	Login   string `json:"login"`
	Role    string `json:"role"`
	Token   string `json:"token"`
}

// APIError Модель возвращаемых ответов при ошибках.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ValidationError Ответ с ошибками валидации: полный список нарушений по полям.
type ValidationError struct {
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Details []errs.FieldViolation `json:"details"`
}

// APISuccess Модель успешного ответа API.
type APISuccess struct {
	Message string `json:"message"`
}

// ServerList Ответ списка серверов с блоком пагинации.
type ServerList struct {
	Data       []models.Server   `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

// Deleted Ответ операции массового удаления.
type Deleted struct {
	Deleted int64 `json:"deleted"`
}

// OK Ответ операции удаления одной записи.
type OK struct {
	OK bool `json:"ok"`
}

// Reachability Ответ проверки доступности сервера по сети.
type Reachability struct {
	ID        int64  `json:"id"`
	IPAddress string `json:"ip_address"`
	Reachable bool   `json:"reachable"`
}

// JSON Пишет в ответ хендлера произвольные данные.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// SuccessJSON Шаблон для успешного ответа в хендлерах.
func SuccessJSON(w http.ResponseWriter, status int, message string) {
	JSON(w, status, APISuccess{Message: message})
}

// ErrorJSON Шаблон для ответа с ошибкой в хендлерах.
func ErrorJSON(w http.ResponseWriter, status int, message string) {
	JSON(w, status, APIError{Code: status, Message: message})
}

// ValidationErrorJSON Шаблон для ответа с ошибками валидации:
// все нарушения перечислены в details одним ответом.
func ValidationErrorJSON(w http.ResponseWriter, details []errs.FieldViolation) {
	JSON(w, http.StatusBadRequest, ValidationError{
		Code:    http.StatusBadRequest,
		Message: "Ошибка валидации",
		Details: details,
	})
}
