package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Один Metrics на весь пакет: коллекторы регистрируются в default registry,
// повторная регистрация с теми же именами паникует
var testMetrics = New("test-service")

func TestMetrics_ObserveAPIRequest(t *testing.T) {
	testMetrics.ObserveAPIRequest("/barbers", http.MethodGet, 200, 120*time.Millisecond)
	testMetrics.ObserveAPIRequest("/barbers", http.MethodGet, 200, 80*time.Millisecond)
	testMetrics.ObserveAPIRequest("/bookings", http.MethodPost, 409, 50*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		testMetrics.apiRequestsTotal.WithLabelValues("test-service", "/barbers", "GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		testMetrics.apiRequestsTotal.WithLabelValues("test-service", "/bookings", "POST", "409")))
}

func TestMetrics_CountFlowOutcome(t *testing.T) {
	testMetrics.CountFlowOutcome("confirmed")
	testMetrics.CountFlowOutcome("confirmed")
	testMetrics.CountFlowOutcome("cancelled")

	assert.Equal(t, float64(2), testutil.ToFloat64(
		testMetrics.flowOutcomesTotal.WithLabelValues("test-service", "confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		testMetrics.flowOutcomesTotal.WithLabelValues("test-service", "cancelled")))
}

func TestInstrumentRoundTripper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := &http.Client{
		Transport: InstrumentRoundTripper(nil, testMetrics, func(r *http.Request) string {
			return "/teapot"
		}),
	}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, float64(1), testutil.ToFloat64(
		testMetrics.apiRequestsTotal.WithLabelValues("test-service", "/teapot", "GET", "418")))
}
