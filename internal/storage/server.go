package storage

import (
	"context"

	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
)

// ServerStorage Интерфейс для записей инвентаря серверов.
//
// Ошибки - закрытое множество: errs.ErrServerNotFound, errs.ErrDuplicatedIP,
// errs.ErrDuplicatedNameProvider; всё остальное - неожиданные ошибки хранилища.
// Уникальные ограничения проверяются самой БД атомарно с записью:
// из двух конкурентных вставок с одинаковым IP ровно одна получит дубликат.
type ServerStorage interface {
	AddServer(ctx context.Context, server models.Server) (*models.Server, error)
	EditServer(ctx context.Context, serverID int64, update models.ServerUpdate) (*models.Server, error)
	DelServer(ctx context.Context, serverID int64) error
	BulkDelServers(ctx context.Context, ids []int64) (int64, error)
	GetServer(ctx context.Context, serverID int64) (*models.Server, error)
	ListServers(ctx context.Context, query models.ServerListQuery) ([]models.Server, int64, error)
}
