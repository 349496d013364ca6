// Package metrics collects and exposes Prometheus metrics for the gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records gateway metrics: session lifecycle outcomes and
// upstream call behavior.
type Collector struct {
	loginSuccess   prometheus.Counter
	loginFailure   *prometheus.CounterVec
	renewalSuccess prometheus.Counter
	renewalFailure prometheus.Counter
	renewalShared  prometheus.Counter
	httpDuration   *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_login_success_total",
			Help: "Successful administrator logins.",
		}),
		loginFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetgate_login_failure_total",
			Help: "Failed login attempts by reason.",
		}, []string{"reason"}),
		renewalSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_renewal_success_total",
			Help: "Successful access-token renewals.",
		}),
		renewalFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_renewal_failure_total",
			Help: "Renewals rejected by the upstream refresh endpoint.",
		}),
		renewalShared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetgate_renewal_shared_total",
			Help: "Renewal calls deduplicated onto an in-flight renewal.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetgate_http_request_duration_seconds",
			Help:    "Gateway HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFailure,
		c.renewalSuccess,
		c.renewalFailure,
		c.renewalShared,
		c.httpDuration,
	)

	return c
}

// RecordLoginSuccess counts a successful login.
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure counts a failed login by reason
// (validation, credentials, privilege, profile).
func (c *Collector) RecordLoginFailure(reason string) {
	c.loginFailure.WithLabelValues(reason).Inc()
}

// RecordRenewalSuccess counts a successful token renewal.
func (c *Collector) RecordRenewalSuccess() {
	c.renewalSuccess.Inc()
}

// RecordRenewalFailure counts a renewal rejection.
func (c *Collector) RecordRenewalFailure() {
	c.renewalFailure.Inc()
}

// RecordRenewalShared counts a caller that joined an in-flight renewal
// instead of issuing its own refresh call.
func (c *Collector) RecordRenewalShared() {
	c.renewalShared.Inc()
}

// RecordHTTPRequest records one gateway request.
func (c *Collector) RecordHTTPRequest(method string, status int, duration time.Duration) {
	c.httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler returns the /metrics HTTP handler for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
