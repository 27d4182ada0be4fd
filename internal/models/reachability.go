package models

import "time"

// ReachabilityStatus Результат сетевой проверки сервера из инвентаря.
type ReachabilityStatus struct {
	ServerID  int64     `json:"server_id"`
	IPAddress string    `json:"ip_address"`
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checked_at"`
}
