package storage

import (
	"context"

	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
)

// UserStorage Интерфейс для пользователей.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUser Проверяет пару логин(или email)/пароль и возвращает пользователя.
	// Неизвестный логин и неверный пароль неразличимы для вызывающего:
	// оба случая - errs.ErrWrongLoginOrPassword.
	GetUser(ctx context.Context, loginOrEmail, password string) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
