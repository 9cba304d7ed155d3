// Package metrics expone contadores de negocio e histogramas HTTP en formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gestorventas/deposito-api/internal/application/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gestorventas"

var _ ports.OrderMetrics = (*Collectors)(nil)

// Collectors agrupa las métricas de la aplicación sobre un registry propio.
type Collectors struct {
	registry            *prometheus.Registry
	ordersClosed        prometheus.Counter
	notificationsFailed prometheus.Counter
	linesAdded          prometheus.Counter
	httpDuration        *prometheus.HistogramVec
}

// New registra todas las métricas (más las de runtime de Go y del proceso).
func New() *Collectors {
	reg := prometheus.NewRegistry()
	c := &Collectors{
		registry: reg,
		ordersClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_closed_total",
			Help:      "Pedidos finalizados.",
		}),
		notificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_notifications_failed_total",
			Help:      "Avisos de pedido cerrado que no se pudieron enviar.",
		}),
		linesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_lines_added_total",
			Help:      "Líneas de pedido creadas.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP por método, ruta y status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.ordersClosed,
		c.notificationsFailed,
		c.linesAdded,
		c.httpDuration,
	)
	return c
}

func (c *Collectors) OrderClosed()        { c.ordersClosed.Inc() }
func (c *Collectors) NotificationFailed() { c.notificationsFailed.Inc() }
func (c *Collectors) LineAdded()          { c.linesAdded.Inc() }

// ObserveHTTP registra la duración de una petición. route debe ser el patrón, no la URL,
// para no disparar la cardinalidad con ids.
func (c *Collectors) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler sirve /metrics.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
