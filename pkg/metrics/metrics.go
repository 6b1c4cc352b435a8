package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics prometheus-коллекторы сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbPoolOpen      *prometheus.GaugeVec
	dbPoolInUse     *prometheus.GaugeVec
	dbPoolIdle      *prometheus.GaugeVec

	slotsComputedTotal      *prometheus.CounterVec
	bookingsAutoCompleted   prometheus.Counter
	bookingsCascadeCanceled prometheus.Counter
	notifyFailuresTotal     prometheus.Counter
}

// New регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"service"}),

		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"service"}),

		dbPoolOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"service"}),

		dbPoolInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}, []string{"service"}),

		dbPoolIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"service"}),

		slotsComputedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_slots_computed_total",
			Help:        "Total number of slots produced by availability computations",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		bookingsAutoCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_auto_completed_total",
			Help:        "Bookings transitioned to completed by the auto-completion job",
			ConstLabels: constLabels,
		}),

		bookingsCascadeCanceled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cascade_cancelled_total",
			Help:        "Bookings cancelled by closed-day schedule exceptions",
			ConstLabels: constLabels,
		}),

		notifyFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Best-effort client notifications that failed",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(service string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(service).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(service).Inc()
	}
}

// SetDBPoolStats обновляет gauge'и connection pool
func (m *Metrics) SetDBPoolStats(service string, open, inUse, idle int) {
	m.dbPoolOpen.WithLabelValues(service).Set(float64(open))
	m.dbPoolInUse.WithLabelValues(service).Set(float64(inUse))
	m.dbPoolIdle.WithLabelValues(service).Set(float64(idle))
}

// AddSlotsComputed увеличивает счетчик сгенерированных слотов
func (m *Metrics) AddSlotsComputed(operation string, n int) {
	m.slotsComputedTotal.WithLabelValues(operation).Add(float64(n))
}

// AddAutoCompleted увеличивает счетчик автозавершенных бронирований
func (m *Metrics) AddAutoCompleted(n int) {
	m.bookingsAutoCompleted.Add(float64(n))
}

// AddCascadeCancelled увеличивает счетчик каскадных отмен
func (m *Metrics) AddCascadeCancelled(n int) {
	m.bookingsCascadeCanceled.Add(float64(n))
}

// IncNotifyFailure увеличивает счетчик неудачных уведомлений
func (m *Metrics) IncNotifyFailure() {
	m.notifyFailuresTotal.Inc()
}
