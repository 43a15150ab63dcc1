package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed order creations",
	}, []string{"reason"})

	OrderEventsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_events_published_total",
		Help: "Total number of order creation events published",
	})

	OrderEventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_event_publish_failures_total",
		Help: "Total number of order event publish failures",
	})

	PaymentEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_events_total",
		Help: "Total number of payment events consumed",
	}, []string{"outcome"})

	UserLookupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "user_lookups_total",
		Help: "Total number of remote user directory lookups",
	})

	UserLookupFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "user_lookup_fallbacks_total",
		Help: "Total number of lookups answered with a fallback projection",
	})

	UserLookupLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "user_lookup_latency_seconds",
		Help:    "Latency of remote user directory lookups",
		Buckets: prometheus.DefBuckets,
	})

	AuthDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_decisions_total",
		Help: "Total number of authorization decisions",
	}, []string{"decision"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
