package health_storage

import "github.com/ivn-dev/simple-cloud-inventory/internal/models"

//go:generate mockgen -destination=mocks/reachability_cache_mock.go -package=mocks . ReachabilityCacheStorage

// ReachabilityCacheStorage Интерфейс in-memory кэша результатов сетевых проверок.
type ReachabilityCacheStorage interface {
	Set(s models.ReachabilityStatus) bool
	Get(id int64) (models.ReachabilityStatus, bool)
	Delete(id int64)
	Prune(existing map[int64]struct{})
}
