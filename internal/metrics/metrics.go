package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "todoapp_http_requests_total",
		Help: "Обработанные HTTP запросы по методу, маршруту и статусу.",
	}, []string{"method", "route", "status"})

	TodosCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "todoapp_todos_created_total",
		Help: "Созданные записи.",
	})

	TodosUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "todoapp_todos_updated_total",
		Help: "Обновлённые записи.",
	})

	TodosDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "todoapp_todos_deleted_total",
		Help: "Удалённые записи.",
	})
)

// ObserveRequest увеличивает счётчик запросов после завершения обработки.
func ObserveRequest(method, route string, status int) {
	RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler отдаёт страницу scrape для Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
