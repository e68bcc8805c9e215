package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics содержит метрики витрины: исходящие вызовы бэкенда
// и ключевые шаги сценария оформления заказа.
type StorefrontMetrics struct {
	// Счётчики сценария оформления
	ordersConfirmed   prometheus.Counter
	orderFailures     prometheus.Counter
	mismatchChecks    prometheus.Counter
	mismatchDetected  prometheus.Counter
	userResolveErrors prometheus.Counter

	// Исходящие вызовы бэкенда
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec

	// Gauge активных сессий (приблизительный, по памяти процесса)
	activeSessions prometheus.Gauge
}

// NewStorefrontMetrics создаёт и регистрирует метрики в default registerer.
func NewStorefrontMetrics() *StorefrontMetrics {
	return newStorefrontMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStorefrontMetricsWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		ordersConfirmed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "sagafitmi_orders_confirmed_total",
			Help: "Total number of orders confirmed through the storefront",
		}),
		orderFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "sagafitmi_order_failures_total",
			Help: "Total number of failed order confirmations",
		}),
		mismatchChecks: registerCounter(registerer, prometheus.CounterOpts{
			Name: "sagafitmi_price_mismatch_checks_total",
			Help: "Total number of price mismatch lookups performed",
		}),
		mismatchDetected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "sagafitmi_price_mismatch_detected_total",
			Help: "Total number of lookups that found at least one drifted price",
		}),
		userResolveErrors: registerCounter(registerer, prometheus.CounterOpts{
			Name: "sagafitmi_user_resolve_errors_total",
			Help: "Total number of order attempts aborted because the user could not be resolved",
		}),
		backendRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "sagafitmi_backend_requests_total",
			Help: "Total number of requests issued to the backend API",
		}, []string{"endpoint", "outcome"}),
		backendDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "sagafitmi_backend_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"endpoint"}),
		activeSessions: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "sagafitmi_active_sessions",
			Help: "Number of sessions currently tracked by this replica",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderConfirmed увеличивает счётчик подтверждённых заказов.
func (m *StorefrontMetrics) RecordOrderConfirmed() {
	m.ordersConfirmed.Inc()
}

// RecordOrderFailure увеличивает счётчик неудачных подтверждений.
func (m *StorefrontMetrics) RecordOrderFailure() {
	m.orderFailures.Inc()
}

// RecordMismatchCheck фиксирует выполненную проверку расхождения цен.
func (m *StorefrontMetrics) RecordMismatchCheck(found bool) {
	m.mismatchChecks.Inc()
	if found {
		m.mismatchDetected.Inc()
	}
}

// RecordUserResolveError фиксирует прерывание заказа из-за нерезолвленного пользователя.
func (m *StorefrontMetrics) RecordUserResolveError() {
	m.userResolveErrors.Inc()
}

// RecordBackendRequest фиксирует исходящий запрос к бэкенду.
func (m *StorefrontMetrics) RecordBackendRequest(endpoint, outcome string, duration time.Duration) {
	m.backendRequests.WithLabelValues(endpoint, outcome).Inc()
	m.backendDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// SessionOpened/SessionClosed ведут приблизительный gauge активных сессий.
func (m *StorefrontMetrics) SessionOpened() { m.activeSessions.Inc() }
func (m *StorefrontMetrics) SessionClosed() { m.activeSessions.Dec() }
