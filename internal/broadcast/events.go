package broadcast

import (
	"encoding/json"

	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
)

// Действия над инвентарем, о которых публикуются события.
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionBulkDelete = "bulk_deleted"
)

// ActionReachability Событие изменения сетевой доступности сервера.
const ActionReachability = "reachability"

// ServerEvent Событие изменения инвентаря серверов, отправляемое во фронтенд.
type ServerEvent struct {
	Action string  `json:"action"`
	IDs    []int64 `json:"ids"`
}

// ReachabilityEvent Событие изменения сетевой доступности сервера.
type ReachabilityEvent struct {
	Action    string `json:"action"`
	ServerID  int64  `json:"server_id"`
	Reachable bool   `json:"reachable"`
}

// PublishServerEvent Сериализует и публикует событие изменения инвентаря.
// Ошибка публикации не должна ломать сам запрос - только логируется.
func PublishServerEvent(b Broadcaster, action string, ids ...int64) {
	event := ServerEvent{Action: action, IDs: ids}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("Не удалось сериализовать событие инвентаря", logger.String("err", err.Error()))
		return
	}

	if err := b.Publish(StreamServers, data); err != nil {
		logger.Log.Warn("Не удалось опубликовать событие инвентаря", logger.String("err", err.Error()))
	}
}

// PublishReachabilityEvent Сериализует и публикует событие изменения доступности сервера.
func PublishReachabilityEvent(b Broadcaster, serverID int64, reachable bool) {
	event := ReachabilityEvent{Action: ActionReachability, ServerID: serverID, Reachable: reachable}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("Не удалось сериализовать событие доступности", logger.String("err", err.Error()))
		return
	}

	if err := b.Publish(StreamServers, data); err != nil {
		logger.Log.Warn("Не удалось опубликовать событие доступности", logger.String("err", err.Error()))
	}
}
