package broadcast

import (
	"net/http"

	"github.com/r3labs/sse/v2"
	"github.com/ivn-dev/simple-cloud-inventory/internal/logger"
)

// StreamServers Топик событий изменения инвентаря серверов.
const StreamServers = "servers"

// R3labsSSEAdapter — адаптер для библиотеки r3labs/sse.
// Обёртка предоставляет Publisher (Publish/Close) и http.Handler для монтирования.
type R3labsSSEAdapter struct {
	srv     *sse.Server
	resolve TopicResolver
}

// NewR3labsSSEAdapter создаёт новый экземпляр адаптера (и internal sse.Server).
func NewR3labsSSEAdapter(resolve TopicResolver) *R3labsSSEAdapter {
	srv := sse.New()

	srv.CreateStream(StreamServers)

	return &R3labsSSEAdapter{srv: srv, resolve: resolve}
}

// Publish реализует интерфейс Publisher.
// Публикует событие в указанный топик (stream). Данные передаются в поле Event.Data.
func (a *R3labsSSEAdapter) Publish(topic string, data []byte) error {
	a.srv.Publish(topic, &sse.Event{Data: data})
	return nil
}

// Close Закрывает все EventSource соединения.
func (a *R3labsSSEAdapter) Close() error {
	a.srv.Close() // закрывает все EventSource соединения
	return nil
}

// HTTPHandler возвращает http.Handler, который можно примонтировать в маршруты (например, на /events/).
// Сначала resolver проверяет право подписки и возвращает имя потока,
// затем запрос передается r3labs (он читает поток из query-параметра `stream`).
func (a *R3labsSSEAdapter) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		topic, err := a.resolve(r)
		if err != nil {
			logger.Log.Warn("Отказ в подписке на события", logger.String("err", err.Error()))
			http.Error(w, "Подписка не разрешена", http.StatusUnauthorized)
			return
		}

		// r3labs выбирает поток по query-параметру stream
		q := r.URL.Query()
		q.Set("stream", topic)
		r.URL.RawQuery = q.Encode()

		a.srv.ServeHTTP(w, r)
	})
}
