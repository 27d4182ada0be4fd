package worker

import (
	"context"
	"sync"

	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
)

//go:generate mockgen -destination=mocks/worker_pool_mock.go -package=mocks . WorkerPool

// WorkerPool Интерфейс пула воркеров сетевых проверок.
type WorkerPool interface {
	Start(ctx context.Context)
	Stop()
	Submit(server *models.Server) bool
}

// ProbeWorkerPool Пул воркеров, проверяющих доступность серверов инвентаря.
type ProbeWorkerPool struct {
	tasks      chan *models.Server
	workerFunc func(ctx context.Context, server *models.Server)
	poolSize   int
	wg         sync.WaitGroup
}

// NewProbeWorkerPool Конструктор ProbeWorkerPool.
func NewProbeWorkerPool(poolSize int, workerFunc func(ctx context.Context, server *models.Server)) *ProbeWorkerPool {
	return &ProbeWorkerPool{
		tasks:      make(chan *models.Server, poolSize*20),
		poolSize:   poolSize,
		workerFunc: workerFunc,
	}
}

// Start Запускает воркеры пула.
func (wp *ProbeWorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.poolSize; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Stop Закрывает очередь задач и дожидается завершения воркеров.
func (wp *ProbeWorkerPool) Stop() {
	close(wp.tasks)
	wp.wg.Wait()
}

// Submit Ставит сервер в очередь на проверку.
// Возвращает false если очередь переполнена - задача пропускается.
func (wp *ProbeWorkerPool) Submit(server *models.Server) bool {
	select {
	case wp.tasks <- server:
		return true
	default:
		// очередь переполнена, пропускаем задачу
		return false
	}
}

func (wp *ProbeWorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("Завершение работы воркера по контексту", logger.Int("probe worker id", id))
			return
		case server, ok := <-wp.tasks:
			if !ok {
				logger.Log.Debug("Очередь задач пуста, завершение работы воркера", logger.Int("probe worker id", id))
				return
			}

			wp.workerFunc(ctx, server)
		}
	}
}
