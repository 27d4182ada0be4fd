package models

// Значения по умолчанию для выборки списка серверов.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	DefaultSortBy    = "created_at"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	DefaultSortOrder = SortOrderDesc
)

// sortableFields Белый список полей, по которым разрешена сортировка.
// Ключ - значение параметра sortBy, значение - имя колонки в БД.
var sortableFields = map[string]string{
	"name":       "name",
	"ip_address": "ip_address",
	"provider":   "provider",
	"status":     "status",
	"cpu_cores":  "cpu_cores",
	"ram_mb":     "ram_mb",
	"storage_gb": "storage_gb",
	"created_at": "created_at",
	"updated_at": "updated_at",
	// алиасы в camelCase, которые шлет фронтенд
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"ipAddress": "ip_address",
}

// ServerListQuery Параметры выборки списка серверов.
// Provider и Status - опциональные фильтры: nil означает "без ограничения"
// (в отличие от строки-сентинела "all" на уровне HTTP параметров).
type ServerListQuery struct {
	Search   string
	Provider *string
	Status   *string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

// NewServerListQuery Возвращает запрос с параметрами по умолчанию:
// первая страница, 10 записей, сортировка по времени создания по убыванию.
func NewServerListQuery() ServerListQuery {
	return ServerListQuery{
		SortBy:   DefaultSortBy,
		SortDesc: true,
		Page:     DefaultPage,
		Limit:    DefaultLimit,
	}
}

// Offset Смещение для offset-пагинации: страницы нумеруются с единицы.
func (q ServerListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// SortColumn Возвращает имя колонки для сортировки.
// Неизвестное поле заменяется полем по умолчанию, чтобы недоверенный
// параметр запроса никогда не попадал в SQL напрямую.
func (q ServerListQuery) SortColumn() string {
	if col, ok := sortableFields[q.SortBy]; ok {
		return col
	}
	return DefaultSortBy
}

// Pagination Блок пагинации в ответе списка.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
	Limit int   `json:"limit"`
}

// NewPagination Считает количество страниц как ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}

	return Pagination{
		Total: total,
		Page:  page,
		Pages: pages,
		Limit: limit,
	}
}
