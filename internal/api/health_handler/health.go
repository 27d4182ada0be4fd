package health_handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ivn-dev/simple-cloud-inventory/internal/api/response"
	"github.com/ivn-dev/simple-cloud-inventory/internal/errs"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
	"github.com/ivn-dev/simple-cloud-inventory/internal/netutils"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage"
)

// Таймауты проверок.
const (
	dbPingTimeout = 2 * time.Second
	probeTimeout  = 3 * time.Second
)

// sshPort Порт для TCP-проверки доступности, если ICMP не дал ответа.
const sshPort = "22"

// HealthHandler обрабатывает HTTP-запросы для проверки состояния сервиса
// и сетевой доступности серверов из инвентаря.
type HealthHandler struct {
	storage storage.Storage
	checker netutils.Checker
}

// NewHealthHandler Конструктор HealthHandler.
func NewHealthHandler(storage storage.Storage, checker netutils.Checker) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		checker: checker,
	}
}

// GetHealth обрабатывает health-check запрос и возвращает статус готовности сервиса.
// Возвращает HTTP 200, если база данных доступна, иначе HTTP 503.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pingCtx, pingCancel := context.WithTimeout(ctx, dbPingTimeout)
	defer pingCancel()

	if err := h.storage.Ping(pingCtx); err != nil {
		logger.Log.Error("База данных PostgreSQL не отвечает", logger.String("error", err.Error()))

		http.Error(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// ServerReachability Проверяет сетевую доступность сервера из инвентаря по его IP адресу.
// Сначала ICMP, при неудаче - попытка TCP-соединения (ICMP часто закрыт у облачных провайдеров).
func (h *HealthHandler) ServerReachability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	creds := models.GetContextCreds(ctx)

	server, err := h.storage.GetServer(ctx, creds.ServerID)

	var ErrServerNotFound *errs.ErrServerNotFound
	if err != nil {
		if errors.As(err, &ErrServerNotFound) {
			logger.Log.Warn("Сервер не найден",
				logger.String("login", creds.Login),
				logger.Int64("serverID", creds.ServerID))
			response.ErrorJSON(w, http.StatusNotFound, "Сервер не найден")
			return
		}

		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка при получении информации о сервере")
		return
	}

	probeCtx, probeDone := context.WithTimeout(ctx, probeTimeout)
	defer probeDone()

	reachable := h.checker.CheckICMP(probeCtx, server.IPAddress, probeTimeout)
	if !reachable {
		reachable = h.checker.CheckTCP(probeCtx, server.IPAddress, sshPort, probeTimeout)
	}

	response.JSON(w, http.StatusOK, response.Reachability{
		ID:        server.ID,
		IPAddress: server.IPAddress,
		Reachable: reachable,
	})
}
