package models

import (
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/ivn-dev/simple-cloud-inventory/internal/errs"
)

const maxServerNameLen = 100

// Допустимые значения провайдера.
const (
	ProviderAWS          = "aws"
	ProviderDigitalOcean = "digitalocean"
	ProviderVultr        = "vultr"
	ProviderOther        = "other"
)

// Допустимые статусы сервера.
const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusMaintenance = "maintenance"
)

// Диапазоны числовых характеристик сервера.
const (
	MinCPUCores = 1
	MaxCPUCores = 128

	MinRAMMb = 512
	MaxRAMMb = 1048576

	MinStorageGb = 10
	MaxStorageGb = 1048576
)

// Server Модель учётной записи сервера в инвентаре.
type Server struct {
	ID        int64     `json:"id,omitempty"`
	Name      string    `json:"name"`
	IPAddress string    `json:"ip_address"`
	Provider  string    `json:"provider"`
	Status    string    `json:"status"`
	CPUCores  int       `json:"cpu_cores"`
	RAMMb     int       `json:"ram_mb"`
	StorageGb int       `json:"storage_gb"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServerUpdate Модель частичного редактирования сервера.
// Каждое поле независимо присутствует-или-отсутствует (nil = поле не передавалось),
// поэтому "поле не передано" и "поле передано пустым" различимы.
type ServerUpdate struct {
	Name      *string `json:"name"`
	IPAddress *string `json:"ip_address"`
	Provider  *string `json:"provider"`
	Status    *string `json:"status"`
	CPUCores  *int    `json:"cpu_cores"`
	RAMMb     *int    `json:"ram_mb"`
	StorageGb *int    `json:"storage_gb"`
}

// IsEmpty Возвращает true если не передано ни одного поля.
func (u ServerUpdate) IsEmpty() bool {
	return u.Name == nil && u.IPAddress == nil && u.Provider == nil && u.Status == nil &&
		u.CPUCores == nil && u.RAMMb == nil && u.StorageGb == nil
}

// isValidIPv4 Проверка адреса на синтаксис IPv4 (четыре октета 0-255 через точку).
func isValidIPv4(addr string) bool {
	// отсекаем IPv6 и hostname: только цифры и точки
	if !regexp.MustCompile(`^[0-9.]+$`).MatchString(addr) {
		return false
	}

	ip := net.ParseIP(addr)
	return ip != nil && ip.To4() != nil
}

// isValidProvider Проверка провайдера на принадлежность перечислению.
func isValidProvider(provider string) bool {
	switch provider {
	case ProviderAWS, ProviderDigitalOcean, ProviderVultr, ProviderOther:
		return true
	}
	return false
}

// isValidStatus Проверка статуса на принадлежность перечислению.
func isValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusMaintenance:
		return true
	}
	return false
}

// CreateValidation Валидация данных при создании сервера.
// Собирает ВСЕ нарушения по полям, не останавливаясь на первом,
// и применяет значения по умолчанию (status = inactive).
// Чистая функция: не ходит в БД и не имеет побочных эффектов кроме нормализации s.
func (s *Server) CreateValidation() error {
	violations := errs.NewErrValidation()

	if len(s.Name) == 0 {
		violations.Add("name", "необходимо указать имя сервера")
	} else if len(s.Name) > maxServerNameLen {
		violations.Add("name", fmt.Sprintf("имя сервера не должно превышать %d символов", maxServerNameLen))
	}

	if len(s.IPAddress) == 0 {
		violations.Add("ip_address", "необходимо указать IP адрес")
	} else if !isValidIPv4(s.IPAddress) {
		violations.Add("ip_address", fmt.Sprintf("невалидный IPv4 адрес: %s", s.IPAddress))
	}

	if len(s.Provider) == 0 {
		violations.Add("provider", "необходимо указать провайдера")
	} else if !isValidProvider(s.Provider) {
		violations.Add("provider", fmt.Sprintf("неизвестный провайдер: %s", s.Provider))
	}

	// статус опционален, по умолчанию inactive
	if s.Status == "" {
		s.Status = StatusInactive
	} else if !isValidStatus(s.Status) {
		violations.Add("status", fmt.Sprintf("неизвестный статус: %s", s.Status))
	}

	if s.CPUCores < MinCPUCores || s.CPUCores > MaxCPUCores {
		violations.Add("cpu_cores", fmt.Sprintf("количество ядер должно быть в диапазоне %d-%d", MinCPUCores, MaxCPUCores))
	}

	if s.RAMMb < MinRAMMb || s.RAMMb > MaxRAMMb {
		violations.Add("ram_mb", fmt.Sprintf("объем памяти должен быть в диапазоне %d-%d МБ", MinRAMMb, MaxRAMMb))
	}

	if s.StorageGb < MinStorageGb || s.StorageGb > MaxStorageGb {
		violations.Add("storage_gb", fmt.Sprintf("объем диска должен быть в диапазоне %d-%d ГБ", MinStorageGb, MaxStorageGb))
	}

	if violations.HasViolations() {
		return violations
	}

	return nil
}

// UpdateValidation Валидация данных при частичном редактировании сервера.
// Правила по полям те же, что при создании, но все поля опциональны.
// Если не передано ни одного поля - запрос отклоняется целиком как пустой.
func (u ServerUpdate) UpdateValidation() error {
	if u.IsEmpty() {
		return errs.NewErrEmptyUpdate()
	}

	violations := errs.NewErrValidation()

	if u.Name != nil {
		if len(*u.Name) == 0 {
			violations.Add("name", "имя сервера не может быть пустым")
		} else if len(*u.Name) > maxServerNameLen {
			violations.Add("name", fmt.Sprintf("имя сервера не должно превышать %d символов", maxServerNameLen))
		}
	}

	if u.IPAddress != nil && !isValidIPv4(*u.IPAddress) {
		violations.Add("ip_address", fmt.Sprintf("невалидный IPv4 адрес: %s", *u.IPAddress))
	}

	if u.Provider != nil && !isValidProvider(*u.Provider) {
		violations.Add("provider", fmt.Sprintf("неизвестный провайдер: %s", *u.Provider))
	}

	if u.Status != nil && !isValidStatus(*u.Status) {
		violations.Add("status", fmt.Sprintf("неизвестный статус: %s", *u.Status))
	}

	if u.CPUCores != nil && (*u.CPUCores < MinCPUCores || *u.CPUCores > MaxCPUCores) {
		violations.Add("cpu_cores", fmt.Sprintf("количество ядер должно быть в диапазоне %d-%d", MinCPUCores, MaxCPUCores))
	}

	if u.RAMMb != nil && (*u.RAMMb < MinRAMMb || *u.RAMMb > MaxRAMMb) {
		violations.Add("ram_mb", fmt.Sprintf("объем памяти должен быть в диапазоне %d-%d МБ", MinRAMMb, MaxRAMMb))
	}

	if u.StorageGb != nil && (*u.StorageGb < MinStorageGb || *u.StorageGb > MaxStorageGb) {
		violations.Add("storage_gb", fmt.Sprintf("объем диска должен быть в диапазоне %d-%d ГБ", MinStorageGb, MaxStorageGb))
	}

	if violations.HasViolations() {
		return violations
	}

	return nil
}
