// Package metrics prometheus collectors of the routing engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	BlockReadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hhroute_block_reads_total",
			Help: "Graph blocks read from the backing file",
		},
	)

	BlockCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hhroute_block_cache_hits_total",
			Help: "Graph block lookups served by the block cache",
		},
	)

	BlockDecodeSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hhroute_block_decode_seconds",
			Help:    "Time spent reading and decoding one graph block",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hhroute_query_duration_seconds",
			Help:    "Shortest path query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"variant"},
	)

	QuerySettledVertices = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hhroute_query_settled_vertices",
			Help:    "Vertices settled by one query, both directions",
			Buckets: prometheus.ExponentialBuckets(8, 4, 10),
		},
	)

	QueryUnreachableTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hhroute_query_unreachable_total",
			Help: "Queries whose target was not reachable",
		},
	)

	DistanceTableHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hhroute_distance_table_hits_total",
			Help: "Queries whose shortest path went through the distance table",
		},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hhroute_http_request_duration_seconds",
			Help:    "HTTP request latency by status code and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method"},
	)
)

func init() {
	prometheus.MustRegister(
		BlockReadsTotal, BlockCacheHitsTotal, BlockDecodeSeconds,
		QueryDuration, QuerySettledVertices, QueryUnreachableTotal,
		DistanceTableHitsTotal, HTTPRequestDuration,
	)
}
