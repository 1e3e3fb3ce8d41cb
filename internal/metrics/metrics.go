package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "path"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests in flight",
		},
	)

	// RedemptionsTotal counts voucher redemptions by result
	// (success, insufficient_points, unavailable, error).
	RedemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinswap_redemptions_total",
			Help: "Voucher redemption attempts by result",
		},
		[]string{"result"},
	)
	// CompensationFailuresTotal counts debits that could not be refunded after
	// the stock reservation failed. Each one needs a manual correction.
	CompensationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pinswap_redemption_compensation_failures_total",
			Help: "Point refunds that failed after a lost stock reservation",
		},
	)
	CheckInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinswap_check_ins_total",
			Help: "QR check-ins by result",
		},
		[]string{"result"},
	)
	NewsletterEmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinswap_newsletter_emails_total",
			Help: "Newsletter emails by delivery status",
		},
		[]string{"status"},
	)
	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pinswap_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

var initOnce sync.Once

// InitMetrics registers the collectors with the default registry, which already
// carries the Go and process collectors. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(HTTPRequestsInFlight)

		prometheus.MustRegister(RedemptionsTotal)
		prometheus.MustRegister(CompensationFailuresTotal)
		prometheus.MustRegister(CheckInsTotal)
		prometheus.MustRegister(NewsletterEmailsTotal)
		prometheus.MustRegister(RateLimitedTotal)
	})
}
