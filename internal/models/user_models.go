package models

import (
	"errors"
	"strings"
	"time"

	"github.com/ivn-dev/simple-cloud-inventory/internal/utils"
)

const (
	loginLen    = 4
	passwordLen = 5
)

// Роли пользователей.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User Модель пользователя.
type User struct {
	ID        int64      `json:"id,omitempty"`
	Login     string     `json:"login"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// RegisterRequest Модель тела запроса регистрации пользователя.
type RegisterRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest Модель тела запроса авторизации.
// В поле login можно передать как логин, так и email.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Validate Базовая валидация регистрационных данных.
func (r RegisterRequest) Validate() error {
	if len(r.Login) < loginLen {
		return errors.New("передан слишком короткий логин (менее 4 символов)")
	}

	if len(r.Password) < passwordLen {
		return errors.New("передан слишком короткий пароль (менее 5 символов)")
	}

	if !utils.IsAlphaNumericOrSpecial(r.Login) {
		return errors.New("недопустимые символы в логине")
	}

	if !utils.IsAlphaNumericOrSpecial(r.Password) {
		return errors.New("недопустимые символы в пароле")
	}

	if !strings.Contains(r.Email, "@") {
		return errors.New("невалидный email")
	}

	if r.Role != "" && r.Role != RoleAdmin && r.Role != RoleUser {
		return errors.New("неизвестная роль")
	}

	return nil
}

// Validate Базовая валидация данных авторизации.
func (l LoginRequest) Validate() error {
	if len(l.Login) == 0 {
		return errors.New("необходимо указать логин или email")
	}

	if len(l.Password) == 0 {
		return errors.New("необходимо указать пароль")
	}

	return nil
}
