package broadcast

import (
	"errors"
	"net/http"
)

//go:generate mockgen -destination=mocks/broadcast_mock.go -package=mocks . Broadcaster

var (
	ErrSubscribeNotSupported = errors.New("подписка не реализована в данном адаптере; используйте HTTPHandler()")
)

// TopicResolver Определяет топик подписки по входящему HTTP-запросу
// (и заодно проверяет право на подписку).
type TopicResolver func(r *http.Request) (string, error)

// Broadcaster Интерфейс публикации событий инвентаря во фронтенд.
type Broadcaster interface {
	HTTPHandler() http.Handler
	Publish(topic string, data []byte) error
	Close() error
}
