package server_handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/ivn-dev/simple-cloud-inventory/internal/api/response"
	broadcastMocks "github.com/ivn-dev/simple-cloud-inventory/internal/broadcast/mocks"
	"github.com/ivn-dev/simple-cloud-inventory/internal/contextkeys"
	"github.com/ivn-dev/simple-cloud-inventory/internal/errs"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
	"github.com/ivn-dev/simple-cloud-inventory/internal/models"
	storageMocks "github.com/ivn-dev/simple-cloud-inventory/internal/storage/mocks"
)

func init() {
	logger.InitLogger("error", "stdout")
}

// Создание контекста с данными о пользователе и сервере.
func createContextWithCreds(login string, userID, serverID int64) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, contextkeys.Login, login)
	ctx = context.WithValue(ctx, contextkeys.UserID, userID)
	ctx = context.WithValue(ctx, contextkeys.ServerID, serverID)
	return ctx
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// validServerBody Валидное тело запроса создания сервера.
func validServerBody() models.Server {
	return models.Server{
		Name:      "web-01",
		IPAddress: "192.168.1.10",
		Provider:  models.ProviderAWS,
		Status:    models.StatusActive,
		CPUCores:  4,
		RAMMb:     8192,
		StorageGb: 100,
	}
}

// TestAddServer Проверяет добавление нового сервера.
func TestAddServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		body             interface{}
		setupStorage     func(m *storageMocks.MockStorage)
		setupBroadcaster func(m *broadcastMocks.MockBroadcaster)
		wantStatus       int
		wantErrorResp    *response.APIError
		wantViolations   []string
	}{
		{
			name:             "невалидный JSON",
			body:             "{invalid}",
			setupStorage:     func(m *storageMocks.MockStorage) {},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantErrorResp: &response.APIError{
				Code:    http.StatusBadRequest,
				Message: "Неверный формат запроса",
			},
		},
		{
			name: "валидация собирает все нарушения сразу",
			body: models.Server{
				IPAddress: "999.999.999.999",
				Provider:  "azure",
				CPUCores:  0,
				RAMMb:     256,
				StorageGb: 5,
			},
			setupStorage:     func(m *storageMocks.MockStorage) {},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantViolations:   []string{"name", "ip_address", "provider", "cpu_cores", "ram_mb", "storage_gb"},
		},
		{
			name: "слишком длинное имя сервера",
			body: func() models.Server {
				s := validServerBody()
				s.Name = strings.Repeat("a", 101)
				return s
			}(),
			setupStorage:     func(m *storageMocks.MockStorage) {},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantViolations:   []string{"name"},
		},
		{
			name: "дубликат IP адреса",
			body: validServerBody(),
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					AddServer(gomock.Any(), gomock.Any()).
					Return(nil, errs.NewErrDuplicatedIP(errors.New("duplicate")))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantErrorResp: &response.APIError{
				Code:    http.StatusBadRequest,
				Message: "Сервер с таким IP адресом уже существует",
			},
		},
		{
			name: "дубликат пары имя/провайдер",
			body: validServerBody(),
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					AddServer(gomock.Any(), gomock.Any()).
					Return(nil, errs.NewErrDuplicatedNameProvider(errors.New("duplicate")))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantErrorResp: &response.APIError{
				Code:    http.StatusBadRequest,
				Message: "Сервер с такой парой имя/провайдер уже существует",
			},
		},
		{
			name: "ошибка БД при добавлении сервера",
			body: validServerBody(),
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					AddServer(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusInternalServerError,
			wantErrorResp: &response.APIError{
				Code:    http.StatusInternalServerError,
				Message: "Ошибка добавления сервера",
			},
		},
		{
			name: "успешное добавление сервера",
			body: validServerBody(),
			setupStorage: func(m *storageMocks.MockStorage) {
				stored := validServerBody()
				stored.ID = 1
				m.EXPECT().
					AddServer(gomock.Any(), gomock.Any()).
					Return(&stored, nil)
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {
				m.EXPECT().Publish("servers", gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "статус по умолчанию при создании без статуса",
			body: func() models.Server {
				s := validServerBody()
				s.Status = ""
				return s
			}(),
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					AddServer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, server models.Server) (*models.Server, error) {
						// статус должен быть проставлен валидацией до записи в БД
						assert.Equal(t, models.StatusInactive, server.Status)
						server.ID = 2
						return &server, nil
					})
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {
				m.EXPECT().Publish("servers", gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorage := storageMocks.NewMockStorage(ctrl)
			mockBroadcaster := broadcastMocks.NewMockBroadcaster(ctrl)

			tt.setupStorage(mockStorage)
			tt.setupBroadcaster(mockBroadcaster)

			handler := NewServerHandler(mockStorage, mockBroadcaster)

			body, _ := json.Marshal(tt.body)
			r := httptest.NewRequest(http.MethodPost, "/api/servers", bytes.NewBuffer(body))
			r.Header.Set("Content-Type", "application/json")
			r = r.WithContext(createContextWithCreds("user", 1, 0))

			w := httptest.NewRecorder()
			handler.AddServer(w, r)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			if tt.wantErrorResp != nil {
				var got response.APIError
				json.NewDecoder(res.Body).Decode(&got)
				assert.Equal(t, tt.wantErrorResp.Code, got.Code)
				assert.Equal(t, tt.wantErrorResp.Message, got.Message)
			} else if tt.wantViolations != nil {
				var got response.ValidationError
				json.NewDecoder(res.Body).Decode(&got)

				gotFields := make([]string, 0, len(got.Details))
				for _, violation := range got.Details {
					gotFields = append(gotFields, violation.Field)
				}
				assert.ElementsMatch(t, tt.wantViolations, gotFields)
			}
		})
	}
}

// TestEditServer Проверяет частичное редактирование сервера.
func TestEditServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		serverID         int64
		body             interface{}
		setupStorage     func(m *storageMocks.MockStorage)
		setupBroadcaster func(m *broadcastMocks.MockBroadcaster)
		wantStatus       int
		wantErrorResp    *response.APIError
		wantViolations   []string
	}{
		{
			name:             "невалидный JSON",
			serverID:         100,
			body:             "{invalid}",
			setupStorage:     func(m *storageMocks.MockStorage) {},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantErrorResp: &response.APIError{
				Code:    http.StatusBadRequest,
				Message: "Неверный формат запроса",
			},
		},
		{
			name:             "пустое тело запроса отклоняется",
			serverID:         100,
			body:             models.ServerUpdate{},
			setupStorage:     func(m *storageMocks.MockStorage) {},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantErrorResp: &response.APIError{
				Code:    http.StatusBadRequest,
				Message: "В запросе не передано ни одного поля",
			},
		},
		{
			name:             "пустая строка в имени отличается от отсутствия поля",
			serverID:         100,
			body:             models.ServerUpdate{Name: strPtr("")},
			setupStorage:     func(m *storageMocks.MockStorage) {},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantViolations:   []string{"name"},
		},
		{
			name:             "невалидный IP адрес",
			serverID:         100,
			body:             models.ServerUpdate{IPAddress: strPtr("not-an-ip")},
			setupStorage:     func(m *storageMocks.MockStorage) {},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantViolations:   []string{"ip_address"},
		},
		{
			name:     "сервер не найден",
			serverID: 100,
			body:     models.ServerUpdate{Name: strPtr("new-name")},
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					EditServer(gomock.Any(), int64(100), gomock.Any()).
					Return(nil, errs.NewErrServerNotFound(100, errors.New("not found")))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusNotFound,
			wantErrorResp: &response.APIError{
				Code:    http.StatusNotFound,
				Message: "Сервер не найден",
			},
		},
		{
			name:     "дубликат IP при редактировании",
			serverID: 100,
			body:     models.ServerUpdate{IPAddress: strPtr("192.168.1.2")},
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					EditServer(gomock.Any(), int64(100), gomock.Any()).
					Return(nil, errs.NewErrDuplicatedIP(errors.New("duplicate")))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
			wantErrorResp: &response.APIError{
				Code:    http.StatusBadRequest,
				Message: "Сервер с таким IP адресом уже существует",
			},
		},
		{
			name:     "ошибка БД при редактировании",
			serverID: 100,
			body:     models.ServerUpdate{Name: strPtr("new-name")},
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					EditServer(gomock.Any(), int64(100), gomock.Any()).
					Return(nil, errors.New("database connection error"))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusInternalServerError,
			wantErrorResp: &response.APIError{
				Code:    http.StatusInternalServerError,
				Message: "Ошибка редактирования сервера",
			},
		},
		{
			name:     "изменение только статуса",
			serverID: 100,
			body:     models.ServerUpdate{Status: strPtr(models.StatusMaintenance)},
			setupStorage: func(m *storageMocks.MockStorage) {
				stored := validServerBody()
				stored.ID = 100
				stored.Status = models.StatusMaintenance
				m.EXPECT().
					EditServer(gomock.Any(), int64(100), gomock.Any()).
					Return(&stored, nil)
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {
				m.EXPECT().Publish("servers", gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "изменение нескольких полей",
			serverID: 100,
			body: models.ServerUpdate{
				Name:     strPtr("db-02"),
				CPUCores: intPtr(16),
				RAMMb:    intPtr(32768),
			},
			setupStorage: func(m *storageMocks.MockStorage) {
				stored := validServerBody()
				stored.ID = 100
				stored.Name = "db-02"
				stored.CPUCores = 16
				stored.RAMMb = 32768
				m.EXPECT().
					EditServer(gomock.Any(), int64(100), gomock.Any()).
					Return(&stored, nil)
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {
				m.EXPECT().Publish("servers", gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorage := storageMocks.NewMockStorage(ctrl)
			mockBroadcaster := broadcastMocks.NewMockBroadcaster(ctrl)

			tt.setupStorage(mockStorage)
			tt.setupBroadcaster(mockBroadcaster)

			handler := NewServerHandler(mockStorage, mockBroadcaster)

			body, _ := json.Marshal(tt.body)
			r := httptest.NewRequest(http.MethodPut, "/api/servers/100", bytes.NewBuffer(body))
			r.Header.Set("Content-Type", "application/json")
			r = r.WithContext(createContextWithCreds("user", 1, tt.serverID))

			w := httptest.NewRecorder()
			handler.EditServer(w, r)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			if tt.wantErrorResp != nil {
				var got response.APIError
				json.NewDecoder(res.Body).Decode(&got)
				assert.Equal(t, tt.wantErrorResp.Code, got.Code)
				assert.Equal(t, tt.wantErrorResp.Message, got.Message)
			} else if tt.wantViolations != nil {
				var got response.ValidationError
				json.NewDecoder(res.Body).Decode(&got)

				gotFields := make([]string, 0, len(got.Details))
				for _, violation := range got.Details {
					gotFields = append(gotFields, violation.Field)
				}
				assert.ElementsMatch(t, tt.wantViolations, gotFields)
			}
		})
	}
}

// TestDelServer Проверяет удаление сервера.
func TestDelServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		serverID         int64
		setupStorage     func(m *storageMocks.MockStorage)
		setupBroadcaster func(m *broadcastMocks.MockBroadcaster)
		wantStatus       int
		wantErrorResp    *response.APIError
	}{
		{
			name:     "сервер не найден",
			serverID: 100,
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					DelServer(gomock.Any(), int64(100)).
					Return(errs.NewErrServerNotFound(100, errors.New("not found")))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusNotFound,
			wantErrorResp: &response.APIError{
				Code:    http.StatusNotFound,
				Message: "Сервер не найден",
			},
		},
		{
			name:     "ошибка БД при удалении",
			serverID: 100,
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					DelServer(gomock.Any(), int64(100)).
					Return(errors.New("db connection error"))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusInternalServerError,
			wantErrorResp: &response.APIError{
				Code:    http.StatusInternalServerError,
				Message: "Ошибка удаления сервера",
			},
		},
		{
			name:     "успешное удаление",
			serverID: 100,
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					DelServer(gomock.Any(), int64(100)).
					Return(nil)
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {
				m.EXPECT().Publish("servers", gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorage := storageMocks.NewMockStorage(ctrl)
			mockBroadcaster := broadcastMocks.NewMockBroadcaster(ctrl)

			tt.setupStorage(mockStorage)
			tt.setupBroadcaster(mockBroadcaster)

			handler := NewServerHandler(mockStorage, mockBroadcaster)

			r := httptest.NewRequest(http.MethodDelete, "/api/servers/100", nil)
			r = r.WithContext(createContextWithCreds("user", 1, tt.serverID))

			w := httptest.NewRecorder()
			handler.DelServer(w, r)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			if tt.wantErrorResp != nil {
				var got response.APIError
				json.NewDecoder(res.Body).Decode(&got)
				assert.Equal(t, tt.wantErrorResp.Code, got.Code)
			} else {
				var got response.OK
				json.NewDecoder(res.Body).Decode(&got)
				assert.True(t, got.OK)
			}
		})
	}
}

// TestBulkDelServers Проверяет массовое удаление серверов.
func TestBulkDelServers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		body             interface{}
		setupStorage     func(m *storageMocks.MockStorage)
		setupBroadcaster func(m *broadcastMocks.MockBroadcaster)
		wantStatus       int
		wantDeleted      int64
	}{
		{
			name:             "пустой список id",
			body:             BulkDeleteRequest{IDs: []int64{}},
			setupStorage:     func(m *storageMocks.MockStorage) {},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusBadRequest,
		},
		{
			name: "ошибка БД при массовом удалении",
			body: BulkDeleteRequest{IDs: []int64{1, 2, 3}},
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					BulkDelServers(gomock.Any(), []int64{1, 2, 3}).
					Return(int64(0), errors.New("db error"))
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {},
			wantStatus:       http.StatusInternalServerError,
		},
		{
			name: "часть id отсутствует в БД",
			body: BulkDeleteRequest{IDs: []int64{1, 2, 777}},
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					BulkDelServers(gomock.Any(), []int64{1, 2, 777}).
					Return(int64(2), nil)
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {
				m.EXPECT().Publish("servers", gomock.Any()).Return(nil)
			},
			wantStatus:  http.StatusOK,
			wantDeleted: 2,
		},
		{
			name: "успешное массовое удаление",
			body: BulkDeleteRequest{IDs: []int64{5, 6}},
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					BulkDelServers(gomock.Any(), []int64{5, 6}).
					Return(int64(2), nil)
			},
			setupBroadcaster: func(m *broadcastMocks.MockBroadcaster) {
				m.EXPECT().Publish("servers", gomock.Any()).Return(nil)
			},
			wantStatus:  http.StatusOK,
			wantDeleted: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorage := storageMocks.NewMockStorage(ctrl)
			mockBroadcaster := broadcastMocks.NewMockBroadcaster(ctrl)

			tt.setupStorage(mockStorage)
			tt.setupBroadcaster(mockBroadcaster)

			handler := NewServerHandler(mockStorage, mockBroadcaster)

			body, _ := json.Marshal(tt.body)
			r := httptest.NewRequest(http.MethodPost, "/api/servers/bulk-delete", bytes.NewBuffer(body))
			r.Header.Set("Content-Type", "application/json")
			r = r.WithContext(createContextWithCreds("user", 1, 0))

			w := httptest.NewRecorder()
			handler.BulkDelServers(w, r)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			if tt.wantStatus == http.StatusOK {
				var got response.Deleted
				json.NewDecoder(res.Body).Decode(&got)
				assert.Equal(t, tt.wantDeleted, got.Deleted)
			}
		})
	}
}

// TestGetServer Проверяет получение информации о сервере.
func TestGetServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		serverID      int64
		setupStorage  func(m *storageMocks.MockStorage)
		wantStatus    int
		wantErrorResp *response.APIError
	}{
		{
			name:     "сервер не найден",
			serverID: 100,
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					GetServer(gomock.Any(), int64(100)).
					Return(nil, errs.NewErrServerNotFound(100, errors.New("not found")))
			},
			wantStatus: http.StatusNotFound,
			wantErrorResp: &response.APIError{
				Code:    http.StatusNotFound,
				Message: "Сервер не найден",
			},
		},
		{
			name:     "ошибка БД",
			serverID: 100,
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					GetServer(gomock.Any(), int64(100)).
					Return(nil, errors.New("db error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:     "успешное получение",
			serverID: 100,
			setupStorage: func(m *storageMocks.MockStorage) {
				stored := validServerBody()
				stored.ID = 100
				m.EXPECT().
					GetServer(gomock.Any(), int64(100)).
					Return(&stored, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorage := storageMocks.NewMockStorage(ctrl)
			mockBroadcaster := broadcastMocks.NewMockBroadcaster(ctrl)

			tt.setupStorage(mockStorage)

			handler := NewServerHandler(mockStorage, mockBroadcaster)

			r := httptest.NewRequest(http.MethodGet, "/api/servers/100", nil)
			r = r.WithContext(createContextWithCreds("user", 1, tt.serverID))

			w := httptest.NewRecorder()
			handler.GetServer(w, r)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			if tt.wantErrorResp != nil {
				var got response.APIError
				json.NewDecoder(res.Body).Decode(&got)
				assert.Equal(t, tt.wantErrorResp.Code, got.Code)
			}
		})
	}
}

// TestListServers Проверяет получение списка серверов.
func TestListServers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name            string
		url             string
		setupStorage    func(m *storageMocks.MockStorage)
		wantStatus      int
		wantServerCount int
		wantPagination  *models.Pagination
	}{
		{
			name: "ошибка при получении списка",
			url:  "/api/servers",
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					ListServers(gomock.Any(), gomock.Any()).
					Return(nil, int64(0), errors.New("db error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "пустой список серверов",
			url:  "/api/servers",
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					ListServers(gomock.Any(), gomock.Any()).
					Return([]models.Server{}, int64(0), nil)
			},
			wantStatus:      http.StatusOK,
			wantServerCount: 0,
			wantPagination:  &models.Pagination{Total: 0, Page: 1, Pages: 0, Limit: 10},
		},
		{
			name: "параметры по умолчанию",
			url:  "/api/servers",
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					ListServers(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, query models.ServerListQuery) ([]models.Server, int64, error) {
						assert.Equal(t, 1, query.Page)
						assert.Equal(t, 10, query.Limit)
						assert.Equal(t, "created_at", query.SortBy)
						assert.True(t, query.SortDesc)
						assert.Nil(t, query.Provider)
						assert.Nil(t, query.Status)
						return []models.Server{}, 0, nil
					})
			},
			wantStatus:      http.StatusOK,
			wantServerCount: 0,
		},
		{
			name: "фильтр all означает отсутствие фильтра",
			url:  "/api/servers?provider=all&status=all",
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					ListServers(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, query models.ServerListQuery) ([]models.Server, int64, error) {
						assert.Nil(t, query.Provider)
						assert.Nil(t, query.Status)
						return []models.Server{}, 0, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "фильтры, сортировка и пагинация из параметров",
			url:  "/api/servers?provider=aws&status=active&search=web&sortBy=name&sortOrder=asc&page=2&limit=5",
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					ListServers(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, query models.ServerListQuery) ([]models.Server, int64, error) {
						assert.Equal(t, "aws", *query.Provider)
						assert.Equal(t, "active", *query.Status)
						assert.Equal(t, "web", query.Search)
						assert.Equal(t, "name", query.SortBy)
						assert.False(t, query.SortDesc)
						assert.Equal(t, 2, query.Page)
						assert.Equal(t, 5, query.Limit)
						return []models.Server{{ID: 6, Name: "web-06"}}, 6, nil
					})
			},
			wantStatus:      http.StatusOK,
			wantServerCount: 1,
			wantPagination:  &models.Pagination{Total: 6, Page: 2, Pages: 2, Limit: 5},
		},
		{
			name: "невалидные page и limit заменяются значениями по умолчанию",
			url:  "/api/servers?page=-1&limit=100500",
			setupStorage: func(m *storageMocks.MockStorage) {
				m.EXPECT().
					ListServers(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, query models.ServerListQuery) ([]models.Server, int64, error) {
						assert.Equal(t, 1, query.Page)
						assert.Equal(t, 10, query.Limit)
						return []models.Server{}, 0, nil
					})
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorage := storageMocks.NewMockStorage(ctrl)
			mockBroadcaster := broadcastMocks.NewMockBroadcaster(ctrl)

			tt.setupStorage(mockStorage)

			handler := NewServerHandler(mockStorage, mockBroadcaster)

			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			r = r.WithContext(createContextWithCreds("user", 1, 0))

			w := httptest.NewRecorder()
			handler.ListServers(w, r)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			if tt.wantStatus == http.StatusOK && tt.wantPagination != nil {
				var got response.ServerList
				json.NewDecoder(res.Body).Decode(&got)
				assert.Equal(t, tt.wantServerCount, len(got.Data))
				assert.Equal(t, *tt.wantPagination, got.Pagination)
			}
		})
	}
}

// TestNewServerHandler Проверяет конструктор ServerHandler.
func TestNewServerHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := storageMocks.NewMockStorage(ctrl)
	mockBroadcaster := broadcastMocks.NewMockBroadcaster(ctrl)

	handler := NewServerHandler(mockStorage, mockBroadcaster)

	assert.NotNil(t, handler, "handler не должен быть nil")
	assert.NotNil(t, handler.storage, "storage должен быть инициализирован")
	assert.NotNil(t, handler.broadcaster, "broadcaster должен быть инициализирован")
}
