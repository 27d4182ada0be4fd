package models

import (
	"context"

	"github.com/ivn-dev/simple-cloud-inventory/internal/contextkeys"
)

// ContextCredentials Получение login, userID, role, serverID из r.Context().
type ContextCredentials struct {
	Login    string
	UserID   int64
	Role     string
	ServerID int64
}

// GetContextCreds Вытаскивает данные из контекста и возвращает структуру.
func GetContextCreds(ctx context.Context) *ContextCredentials {
	creds := &ContextCredentials{}

	// Login (string)
	if v := ctx.Value(contextkeys.Login); v != nil {
		if login, ok := v.(string); ok {
			creds.Login = login
		}
	}

	// UserID (int64)
	if v := ctx.Value(contextkeys.UserID); v != nil {
		if userID, ok := v.(int64); ok {
			creds.UserID = userID
		}
	}

	// Role (string)
	if v := ctx.Value(contextkeys.Role); v != nil {
		if role, ok := v.(string); ok {
			creds.Role = role
		}
	}

	// ServerID (int64)
	if v := ctx.Value(contextkeys.ServerID); v != nil {
		if serverID, ok := v.(int64); ok {
			creds.ServerID = serverID
		}
	}

	return creds
}
