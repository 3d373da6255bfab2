package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "HTTP requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	paymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_payments_recorded_total",
			Help: "Payments recorded, by method",
		},
		[]string{"payment_method"},
	)

	paymentVolume = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_payment_volume",
			Help: "Total recorded payment amount, by method",
		},
		[]string{"payment_method"},
	)

	collectionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_collections_recorded_total",
			Help: "Bank collections recorded",
		},
	)

	collectionVolume = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_collection_volume",
			Help: "Total collected amount withdrawn from bank accounts",
		},
	)

	ledgerAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_bank_ledger_adjustments_total",
			Help: "Bank running-balance adjustments, by direction",
		},
		[]string{"direction"},
	)
)

// RecordPayment counts a recorded payment and its volume.
// Volume is a float approximation; exact amounts live in the database.
func RecordPayment(method string, amount decimal.Decimal) {
	paymentsRecorded.WithLabelValues(method).Inc()
	f, _ := amount.Float64()
	paymentVolume.WithLabelValues(method).Add(f)
}

// RecordCollection counts a recorded bank collection and its volume
func RecordCollection(amount decimal.Decimal) {
	collectionsRecorded.Inc()
	f, _ := amount.Float64()
	collectionVolume.Add(f)
}

// RecordLedgerAdjustment counts a bank running-balance credit or debit
func RecordLedgerAdjustment(delta decimal.Decimal) {
	if delta.IsNegative() {
		ledgerAdjustments.WithLabelValues("debit").Inc()
		return
	}
	ledgerAdjustments.WithLabelValues("credit").Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMetrics records request counts and latency per chi route pattern.
// The pattern, not the raw path, keeps label cardinality bounded.
func HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
