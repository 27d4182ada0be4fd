package storage

import "context"

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks . Storage

// Storage Интерфейс хранилища.
type Storage interface {
	ServerStorage
	UserStorage
	Ping(ctx context.Context) error
	Close() error
}
