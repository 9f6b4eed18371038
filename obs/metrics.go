package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/warp/rental-engine/rental"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentals", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rentals", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	QuotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentals", Name: "quotes_total", Help: "Quote outcomes."},
		[]string{"outcome"}, // outcome: ok|rejected|error
	)
	RejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rentals", Name: "quote_rejections_total", Help: "Quote rejections by reason."},
		[]string{"reason"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, QuotesTotal, RejectionsTotal)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveQuote classifies a quote outcome for the counters.
func ObserveQuote(err error) {
	switch {
	case err == nil:
		QuotesTotal.WithLabelValues("ok").Inc()
	case rental.IsClientError(err):
		QuotesTotal.WithLabelValues("rejected").Inc()
		if reason, _, ok := rental.ReasonOf(err); ok {
			RejectionsTotal.WithLabelValues(string(reason)).Inc()
		}
	default:
		QuotesTotal.WithLabelValues("error").Inc()
	}
}
