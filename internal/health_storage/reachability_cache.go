package health_storage

import (
	"sync"

	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
)

// ReachabilityCache In-memory хранилище результатов сетевых проверок серверов.
// БД этими результатами не нагружается: они живут только в памяти процесса.
type ReachabilityCache struct {
	mu    sync.RWMutex
	cache map[int64]models.ReachabilityStatus
}

// NewReachabilityCache Конструктор ReachabilityCache.
func NewReachabilityCache() *ReachabilityCache {
	return &ReachabilityCache{
		cache: make(map[int64]models.ReachabilityStatus),
	}
}

// Set Сохраняет результат проверки. Возвращает true, если доступность
// сервера изменилась по сравнению с предыдущим результатом (или сервер новый).
func (rc *ReachabilityCache) Set(s models.ReachabilityStatus) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	old, ok := rc.cache[s.ServerID]
	rc.cache[s.ServerID] = s

	return !ok || old.Reachable != s.Reachable
}

// Get Извлекает последний результат проверки сервера.
func (rc *ReachabilityCache) Get(id int64) (models.ReachabilityStatus, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	v, ok := rc.cache[id]

	return v, ok
}

// Delete Удаляет результат проверки сервера.
func (rc *ReachabilityCache) Delete(id int64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	delete(rc.cache, id)
}

// Prune Удаляет из кэша серверы, которых больше нет в инвентаре.
func (rc *ReachabilityCache) Prune(existing map[int64]struct{}) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for id := range rc.cache {
		if _, ok := existing[id]; !ok {
			delete(rc.cache, id)
		}
	}
}
