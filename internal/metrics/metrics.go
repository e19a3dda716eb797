// Package metrics defines Prometheus metrics for the navigator.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navigator_query_duration_seconds",
			Help:    "Query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_queries_total",
			Help: "Total queries by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	DatasetSystems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_dataset_systems",
			Help: "System count in the loaded dataset",
		},
	)

	DatasetLinks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_dataset_links",
			Help: "Stargate link count in the loaded dataset",
		},
	)

	DatasetBorders = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_dataset_borders",
			Help: "Border system count in the loaded dataset",
		},
	)
)

func init() {
	prometheus.MustRegister(
		QueryDuration, QueriesTotal,
		DatasetSystems, DatasetLinks, DatasetBorders,
	)
}
