package worker

import (
	"context"
	"time"

	"github.com/ivn-dev/simple-cloud-inventory/internal/broadcast"
	"github.com/ivn-dev/simple-cloud-inventory/internal/health_storage"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
	"github.com/ivn-dev/simple-cloud-inventory/internal/netutils"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage"
)

// Параметры фонового обхода инвентаря.
const (
	probeTimeout  = 3 * time.Second
	probePort     = "22"
	probePoolSize = 5
	sweepPageSize = 100
)

// ReachabilityWorker Периодически обходит инвентарь и проверяет сетевую
// доступность каждого сервера. Изменения публикуются через Broadcaster,
// последние результаты хранятся в in-memory кэше.
func ReachabilityWorker(ctx context.Context, store storage.Storage, checker netutils.Checker,
	cache health_storage.ReachabilityCacheStorage, broadcaster broadcast.Broadcaster, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := sweepInventory(ctx, store, checker, cache, broadcaster); err != nil {
			logger.Log.Error("Ошибка воркера ReachabilityWorker", logger.String("err", err.Error()))
		}

		select {
		case <-ctx.Done():
			logger.Log.Info("Завершение работы воркера ReachabilityWorker по контексту",
				logger.String("info", ctx.Err().Error()))
			return
		case <-ticker.C: // следующий цикл по таймеру
		}
	}
}

// sweepInventory Один цикл обхода: постранично вычитывает инвентарь,
// раздаёт серверы пулу воркеров и чистит кэш от удалённых серверов.
func sweepInventory(ctx context.Context, store storage.Storage, checker netutils.Checker,
	cache health_storage.ReachabilityCacheStorage, broadcaster broadcast.Broadcaster) error {
	sweepCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	seen := make(map[int64]struct{})

	pool := NewProbeWorkerPool(probePoolSize, func(ctx context.Context, server *models.Server) {
		probeServer(ctx, checker, cache, broadcaster, server)
	})
	pool.Start(sweepCtx)

	page := 1
	for {
		query := models.NewServerListQuery()
		query.Page = page
		query.Limit = sweepPageSize

		servers, total, err := store.ListServers(sweepCtx, query)
		if err != nil {
			pool.Stop()
			return err
		}

		for i := range servers {
			seen[servers[i].ID] = struct{}{}

			if !pool.Submit(&servers[i]) {
				logger.Log.Warn("Очередь проверок переполнена, сервер пропущен",
					logger.Int64("serverID", servers[i].ID))
			}
		}

		if int64(page*sweepPageSize) >= total || len(servers) == 0 {
			break
		}
		page++
	}

	pool.Stop()

	cache.Prune(seen)

	return nil
}

// probeServer Проверяет один сервер: сначала ICMP, при неудаче - TCP.
// Событие публикуется только если доступность изменилась.
func probeServer(ctx context.Context, checker netutils.Checker, cache health_storage.ReachabilityCacheStorage,
	broadcaster broadcast.Broadcaster, server *models.Server) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	reachable := checker.CheckICMP(probeCtx, server.IPAddress, probeTimeout)
	if !reachable {
		reachable = checker.CheckTCP(probeCtx, server.IPAddress, probePort, probeTimeout)
	}

	changed := cache.Set(models.ReachabilityStatus{
		ServerID:  server.ID,
		IPAddress: server.IPAddress,
		Reachable: reachable,
		CheckedAt: time.Now(),
	})

	if changed {
		broadcast.PublishReachabilityEvent(broadcaster, server.ID, reachable)
	}
}
