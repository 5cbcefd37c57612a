// Package metrics provides Prometheus metrics for the catalog API: HTTP
// request totals, latency and in-flight counts, plus domain metrics for
// ingestion outcomes, name-resolution tiers and catalog sizes. All metrics
// register with the Prometheus default registry at package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	IngestRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_rows_total",
			Help: "Ingested rows by catalog and outcome (created, updated, skipped)",
		},
		[]string{"catalog", "result"},
	)

	NameResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "name_resolutions_total",
			Help: "Name lookups by resolution tier (exact, contains, fuzzy, miss)",
		},
		[]string{"tier"},
	)

	CatalogRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_records",
			Help: "Records currently stored per catalog",
		},
		[]string{"catalog"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(IngestRowsTotal)
	prometheus.MustRegister(NameResolutionsTotal)
	prometheus.MustRegister(CatalogRecords)
}
