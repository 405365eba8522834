// Package metrics registers the Prometheus collectors exposed at /metrics.
package metrics

import (
	"errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once    sync.Once
	initErr error

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInflight        *prometheus.GaugeVec

	LoginAttemptsTotal *prometheus.CounterVec
	RateLimitedTotal   *prometheus.CounterVec
	CourtLookupsTotal  *prometheus.CounterVec
	CourtLookupLatency prometheus.Histogram
	DocumentBytesTotal prometheus.Counter
)

// Register creates the collectors on reg (the default registerer when nil)
// and returns the scrape handler. Safe to call more than once.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	once.Do(func() {
		HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdesk_http_requests_total",
			Help: "HTTP requests processed, by method, route and status.",
		}, []string{"method", "route", "status"})

		HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lexdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

		HTTPInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lexdesk_http_inflight_requests",
			Help: "Requests currently being served.",
		}, []string{"method", "route"})

		LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdesk_login_attempts_total",
			Help: "Credential checks by grant and result.",
		}, []string{"grant", "result"})

		RateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdesk_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by route.",
		}, []string{"route"})

		CourtLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexdesk_court_lookups_total",
			Help: "Court record lookups by tribunal and result.",
		}, []string{"tribunal", "result"})

		CourtLookupLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lexdesk_court_lookup_duration_seconds",
			Help:    "Latency of the court lookup webhook.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		})

		DocumentBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lexdesk_document_bytes_total",
			Help: "Bytes of document content stored.",
		})

		for _, c := range []prometheus.Collector{
			HTTPRequestsTotal, HTTPRequestDuration, HTTPInflight,
			LoginAttemptsTotal, RateLimitedTotal,
			CourtLookupsTotal, CourtLookupLatency, DocumentBytesTotal,
		} {
			if err := registerCollector(reg, c); err != nil {
				initErr = err
				return
			}
		}
	})
	if initErr != nil {
		return nil, initErr
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{}), nil
	}
	return promhttp.Handler(), nil
}

// Enabled reports whether Register has run successfully.
func Enabled() bool {
	return HTTPRequestsTotal != nil && initErr == nil
}

// registerCollector ignores duplicate registration.
func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}

// ObserveLogin counts a credential check. No-op before Register.
func ObserveLogin(grant string, ok bool) {
	if LoginAttemptsTotal == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	LoginAttemptsTotal.WithLabelValues(grant, result).Inc()
}

// ObserveRateLimited counts a rejected request. No-op before Register.
func ObserveRateLimited(route string) {
	if RateLimitedTotal == nil {
		return
	}
	RateLimitedTotal.WithLabelValues(route).Inc()
}

// ObserveCourtLookup records one webhook call. No-op before Register.
func ObserveCourtLookup(tribunal, result string, seconds float64) {
	if CourtLookupsTotal == nil {
		return
	}
	CourtLookupsTotal.WithLabelValues(tribunal, result).Inc()
	CourtLookupLatency.Observe(seconds)
}

// ObserveDocumentBytes adds stored upload bytes. No-op before Register.
func ObserveDocumentBytes(n int64) {
	if DocumentBytesTotal == nil {
		return
	}
	DocumentBytesTotal.Add(float64(n))
}
