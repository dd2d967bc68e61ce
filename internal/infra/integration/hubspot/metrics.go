package hubspot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	crmRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_requests_total",
			Help: "Total number of CRM API requests",
		},
		[]string{"operation", "status"},
	)

	crmRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_request_duration_seconds",
			Help:    "Duration of CRM API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
