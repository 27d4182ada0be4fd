package contextkeys

// ContextKey Тип для ключей контекста, чтобы избежать коллизий со сторонними пакетами.
type ContextKey string

const (
	// Login Логин аутентифицированного пользователя.
	Login ContextKey = "login"
	// UserID ID аутентифицированного пользователя.
	UserID ContextKey = "userID"
	// Role Роль аутентифицированного пользователя.
	Role ContextKey = "role"
	// ServerID ID сервера из URL параметров.
	ServerID ContextKey = "serverID"
	// RequestID Уникальный идентификатор запроса.
	RequestID ContextKey = "requestID"
)
