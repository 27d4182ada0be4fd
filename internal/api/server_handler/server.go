package server_handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ivn-dev/simple-cloud-inventory/internal/api/response"
	"github.com/ivn-dev/simple-cloud-inventory/internal/broadcast"
	"github.com/ivn-dev/simple-cloud-inventory/internal/errs"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
	"github.com/ivn-dev/simple-cloud-inventory/internal/storage"
)

// FilterAll Строка-сентинел "all" в HTTP параметрах provider/status.
// На уровне запроса к хранилищу превращается в отсутствие фильтра (nil),
// чтобы сентинел не мог совпасть с легитимным значением перечисления.
const FilterAll = "all"

// ServerHandler Обработчик CRUD-операций над инвентарем серверов.
type ServerHandler struct {
	storage     storage.Storage
	broadcaster broadcast.Broadcaster
}

// NewServerHandler Конструктор ServerHandler.
func NewServerHandler(storage storage.Storage, broadcaster broadcast.Broadcaster) *ServerHandler {
	return &ServerHandler{
		storage:     storage,
		broadcaster: broadcaster,
	}
}

// parseListQuery Разбирает параметры запроса списка.
// Невалидные или отсутствующие значения заменяются значениями по умолчанию:
// page=1, limit=10, сортировка по created_at по убыванию.
func parseListQuery(r *http.Request) models.ServerListQuery {
	query := models.NewServerListQuery()
	params := r.URL.Query()

	if page, err := strconv.Atoi(params.Get("page")); err == nil && page >= 1 {
		query.Page = page
	}

	if limit, err := strconv.Atoi(params.Get("limit")); err == nil && limit >= 1 && limit <= models.MaxLimit {
		query.Limit = limit
	}

	query.Search = params.Get("search")

	// "all" и пустая строка означают отсутствие фильтра
	if provider := params.Get("provider"); provider != "" && provider != FilterAll {
		query.Provider = &provider
	}

	if status := params.Get("status"); status != "" && status != FilterAll {
		query.Status = &status
	}

	if sortBy := params.Get("sortBy"); sortBy != "" {
		query.SortBy = sortBy
	}

	if params.Get("sortOrder") == models.SortOrderAsc {
		query.SortDesc = false
	}

	return query
}

// ListServers Список серверов с фильтрацией, сортировкой и пагинацией.
func (h *ServerHandler) ListServers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	query := parseListQuery(r)

	servers, total, err := h.storage.ListServers(ctx, query)
	if err != nil {
		logger.Log.Error("Ошибка получения списка серверов", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка получения списка серверов")
		return
	}

	response.JSON(w, http.StatusOK, response.ServerList{
		Data:       servers,
		Pagination: models.NewPagination(total, query.Page, query.Limit),
	})
}

// GetServer Получение одной записи сервера.
func (h *ServerHandler) GetServer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	creds := models.GetContextCreds(ctx)

	server, err := h.storage.GetServer(ctx, creds.ServerID)

	var ErrServerNotFound *errs.ErrServerNotFound
	if err != nil {
		switch {
		case errors.As(err, &ErrServerNotFound):
			logger.Log.Warn("Сервер не найден",
				logger.Int64("serverID", creds.ServerID),
				logger.String("login", creds.Login))
			response.ErrorJSON(w, http.StatusNotFound, "Сервер не найден")
			return
		default:
			logger.Log.Error("Ошибка получения сервера", logger.String("err", err.Error()))
			response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка получения сервера")
			return
		}
	}

	response.JSON(w, http.StatusOK, server)
}

// writeDuplicateError Пишет ответ о нарушении инварианта уникальности.
// В сообщении называется, какой именно инвариант нарушен (IP или имя+провайдер),
// но не возвращается существующая запись, с которой произошла коллизия.
func writeDuplicateError(w http.ResponseWriter, err error) bool {
	var errDuplicatedIP *errs.ErrDuplicatedIP
	var errDuplicatedNameProvider *errs.ErrDuplicatedNameProvider

	switch {
	case errors.As(err, &errDuplicatedIP):
		logger.Log.Warn("Дубликат IP адреса", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, "Сервер с таким IP адресом уже существует")
		return true
	case errors.As(err, &errDuplicatedNameProvider):
		logger.Log.Warn("Дубликат пары имя/провайдер", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusBadRequest, "Сервер с такой парой имя/провайдер уже существует")
		return true
	}

	return false
}

// writeValidationError Пишет ответ с полным списком нарушений валидации.
func writeValidationError(w http.ResponseWriter, err error) bool {
	var errValidation *errs.ErrValidation
	var errEmptyUpdate *errs.ErrEmptyUpdate

	switch {
	case errors.As(err, &errValidation):
		logger.Log.Warn("Ошибка валидации записи сервера", logger.String("err", err.Error()))
		response.ValidationErrorJSON(w, errValidation.Details)
		return true
	case errors.As(err, &errEmptyUpdate):
		logger.Log.Warn("Пустой запрос на редактирование сервера")
		response.ErrorJSON(w, http.StatusBadRequest, "В запросе не передано ни одного поля")
		return true
	}

	return false
}

// AddServer Создание новой записи сервера.
func (h *ServerHandler) AddServer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	creds := models.GetContextCreds(ctx)

	var server models.Server

	// неизвестные поля тела запроса молча игнорируются
	if err := json.NewDecoder(r.Body).Decode(&server); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	// валидация собирает все нарушения сразу и применяет статус по умолчанию
	if err := server.CreateValidation(); err != nil {
		writeValidationError(w, err)
		return
	}

	stored, err := h.storage.AddServer(ctx, server)
	if err != nil {
		if writeDuplicateError(w, err) {
			return
		}

		logger.Log.Error("Ошибка добавления сервера в БД", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка добавления сервера")
		return
	}

	logger.Log.Debug("Сервер успешно добавлен",
		logger.String("login", creds.Login),
		logger.Int64("serverID", stored.ID),
		logger.String("ip_address", stored.IPAddress))

	broadcast.PublishServerEvent(h.broadcaster, broadcast.ActionCreated, stored.ID)

	response.JSON(w, http.StatusCreated, stored)
}

// EditServer Частичное редактирование записи сервера.
// Меняются только переданные поля; правила валидации те же, что при создании.
func (h *ServerHandler) EditServer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	creds := models.GetContextCreds(ctx)

	var update models.ServerUpdate

	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	if err := update.UpdateValidation(); err != nil {
		writeValidationError(w, err)
		return
	}

	stored, err := h.storage.EditServer(ctx, creds.ServerID, update)

	var ErrServerNotFound *errs.ErrServerNotFound
	if err != nil {
		if writeDuplicateError(w, err) {
			return
		}

		switch {
		case errors.As(err, &ErrServerNotFound):
			logger.Log.Warn("Сервер не найден при редактировании",
				logger.Int64("serverID", creds.ServerID),
				logger.String("login", creds.Login))
			response.ErrorJSON(w, http.StatusNotFound, "Сервер не найден")
			return
		default:
			logger.Log.Error("Ошибка редактирования сервера", logger.String("err", err.Error()))
			response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка редактирования сервера")
			return
		}
	}

	logger.Log.Debug("Сервер успешно отредактирован",
		logger.String("login", creds.Login),
		logger.Int64("serverID", stored.ID))

	broadcast.PublishServerEvent(h.broadcaster, broadcast.ActionUpdated, stored.ID)

	response.JSON(w, http.StatusOK, stored)
}

// DelServer Удаление записи сервера.
// Повторное удаление уже удаленной записи каждый раз возвращает 404 (идемпотентно по результату).
func (h *ServerHandler) DelServer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	creds := models.GetContextCreds(ctx)

	err := h.storage.DelServer(ctx, creds.ServerID)

	var ErrServerNotFound *errs.ErrServerNotFound
	if err != nil {
		switch {
		case errors.As(err, &ErrServerNotFound):
			logger.Log.Warn("Сервер не найден при удалении",
				logger.Int64("serverID", creds.ServerID),
				logger.String("login", creds.Login))
			response.ErrorJSON(w, http.StatusNotFound, "Сервер не найден")
			return
		default:
			logger.Log.Error("Ошибка удаления сервера", logger.String("err", err.Error()))
			response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка удаления сервера")
			return
		}
	}

	logger.Log.Debug("Сервер успешно удален",
		logger.String("login", creds.Login),
		logger.Int64("serverID", creds.ServerID))

	broadcast.PublishServerEvent(h.broadcaster, broadcast.ActionDeleted, creds.ServerID)

	response.JSON(w, http.StatusOK, response.OK{OK: true})
}

// BulkDeleteRequest Модель тела запроса массового удаления.
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// BulkDelServers Массовое удаление записей.
// Отсутствующие в БД id молча игнорируются; пустой список - ошибка вызывающего.
func (h *ServerHandler) BulkDelServers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	creds := models.GetContextCreds(ctx)

	var request BulkDeleteRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	// пустой список id отклоняется до обращения к хранилищу
	if len(request.IDs) == 0 {
		logger.Log.Warn("Массовое удаление без списка id", logger.String("login", creds.Login))
		response.ErrorJSON(w, http.StatusBadRequest, "Необходимо передать непустой список ids")
		return
	}

	deleted, err := h.storage.BulkDelServers(ctx, request.IDs)
	if err != nil {
		logger.Log.Error("Ошибка массового удаления серверов", logger.String("err", err.Error()))
		response.ErrorJSON(w, http.StatusInternalServerError, "Ошибка массового удаления серверов")
		return
	}

	logger.Log.Debug("Массовое удаление выполнено",
		logger.String("login", creds.Login),
		logger.Int64("deleted", deleted))

	broadcast.PublishServerEvent(h.broadcaster, broadcast.ActionBulkDelete, request.IDs...)

	response.JSON(w, http.StatusOK, response.Deleted{Deleted: deleted})
}
