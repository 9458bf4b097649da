package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics prometheus-коллекторы клиента
// Покрывают два среза: исходящие запросы к backend API и итоги booking flow
type Metrics struct {
	serviceName string

	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	flowOutcomesTotal  *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookingflow_api_requests_total",
				Help: "Total outgoing API requests by endpoint, method and status code",
			},
			[]string{"service", "endpoint", "method", "status"},
		),
		apiRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookingflow_api_request_duration_seconds",
				Help:    "Outgoing API request duration by endpoint",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "endpoint"},
		),
		flowOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookingflow_flow_outcomes_total",
				Help: "Booking flow terminal outcomes (confirmed, slot_unavailable, session_expired, submission_failed, cancelled)",
			},
			[]string{"service", "outcome"},
		),
	}

	prometheus.MustRegister(m.apiRequestsTotal, m.apiRequestDuration, m.flowOutcomesTotal)
	return m
}

// ObserveAPIRequest фиксирует завершённый запрос к backend API
func (m *Metrics) ObserveAPIRequest(endpoint, method string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.apiRequestsTotal.WithLabelValues(m.serviceName, endpoint, method, status).Inc()
	m.apiRequestDuration.WithLabelValues(m.serviceName, endpoint).Observe(duration.Seconds())
}

// CountFlowOutcome фиксирует терминальный исход booking flow
func (m *Metrics) CountFlowOutcome(outcome string) {
	m.flowOutcomesTotal.WithLabelValues(m.serviceName, outcome).Inc()
}

// roundTripper оборачивает http.RoundTripper и снимает метрики с каждого запроса
type roundTripper struct {
	next     http.RoundTripper
	metrics  *Metrics
	endpoint func(*http.Request) string
}

// InstrumentRoundTripper оборачивает транспорт HTTP-клиента сбором метрик.
// endpoint извлекает из запроса нормализованное имя endpoint'а (без ID в пути),
// чтобы не раздувать кардинальность label'ов.
func InstrumentRoundTripper(next http.RoundTripper, m *Metrics, endpoint func(*http.Request) string) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &roundTripper{next: next, metrics: m, endpoint: endpoint}
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		rt.metrics.ObserveAPIRequest(rt.endpoint(req), req.Method, 0, time.Since(start))
		return nil, err
	}
	rt.metrics.ObserveAPIRequest(rt.endpoint(req), req.Method, resp.StatusCode, time.Since(start))
	return resp, nil
}
