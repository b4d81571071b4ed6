package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered         prometheus.Counter
	UsersAutoProvisioned    prometheus.Counter
	ListingsCreated         prometheus.Counter
	SellerPromotions        prometheus.Counter
	SellerPromotionFailures prometheus.Counter
	RequestLatency          *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feria_users_registered_total",
			Help: "Total number of users registered explicitly",
		}),
		UsersAutoProvisioned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feria_users_auto_provisioned_total",
			Help: "Total number of user records created by the identity gateway",
		}),
		ListingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feria_listings_created_total",
			Help: "Total number of product listings created",
		}),
		SellerPromotions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feria_seller_promotions_total",
			Help: "Total number of users promoted to seller",
		}),
		SellerPromotionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "feria_seller_promotion_failures_total",
			Help: "Seller promotions that failed after a successful listing insert",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feria_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveRequest records one request's latency under its route and status.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
}
