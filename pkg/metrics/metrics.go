package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	CheckoutSessionsCreated *prometheus.CounterVec
	InvoicesIssued          *prometheus.CounterVec
	WebhookEvents           *prometheus.CounterVec
	ContactSubmissions      prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		CheckoutSessionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_sessions_created_total",
				Help: "Total number of Stripe checkout sessions created",
			},
			[]string{"plan"},
		),
		InvoicesIssued: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoices_issued_total",
				Help: "Total number of Stripe invoices finalized and sent",
			},
			[]string{"plan"},
		),
		WebhookEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_events_total",
				Help: "Total number of verified Stripe webhook events received",
			},
			[]string{"event_type"},
		),
		ContactSubmissions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions relayed",
		}),
	}
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, not the raw URL

			err := next(c)

			status := c.Response().Status
			duration := time.Since(start).Seconds()

			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, strconv.Itoa(status)).Observe(duration)

			return err
		}
	}
}

// RecordCheckoutSession increments the checkout sessions counter
func (m *Metrics) RecordCheckoutSession(plan string) {
	m.CheckoutSessionsCreated.WithLabelValues(plan).Inc()
}

// RecordInvoiceIssued increments the invoices issued counter
func (m *Metrics) RecordInvoiceIssued(plan string) {
	m.InvoicesIssued.WithLabelValues(plan).Inc()
}

// RecordWebhookEvent increments the webhook events counter
func (m *Metrics) RecordWebhookEvent(eventType string) {
	m.WebhookEvents.WithLabelValues(eventType).Inc()
}

// RecordContactSubmission increments the contact submissions counter
func (m *Metrics) RecordContactSubmission() {
	m.ContactSubmissions.Inc()
}
