package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommentsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_comments_ingested_total",
		Help: "The total number of comments accepted into the ingestion queue",
	})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "enricher_queue_depth",
		Help: "Current number of comments waiting in the ingestion queue",
	})

	BatchesFlushed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enricher_batches_flushed_total",
		Help: "The total number of batches flushed by trigger reason",
	}, []string{"reason"})

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "enricher_batch_size",
		Help:    "Number of comments per flushed batch",
		Buckets: []float64{1, 2, 5, 10, 15, 20, 50},
	})

	BatchFlushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "enricher_batch_flush_duration_seconds",
		Help:    "Duration of a full batch flush (fan-out, sentiment and merge)",
		Buckets: prometheus.DefBuckets,
	})

	ExtractorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "enricher_extractor_duration_seconds",
		Help:    "Duration of one extractor over one batch",
		Buckets: prometheus.DefBuckets,
	}, []string{"attribute"})

	ExtractorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enricher_extractor_failures_total",
		Help: "The total number of extractor failures by attribute",
	}, []string{"attribute"})

	IntegrityMismatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enricher_integrity_mismatches_total",
		Help: "Attribute results dropped because their id did not align with the batch",
	}, []string{"attribute"})

	RecordsEnriched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_records_enriched_total",
		Help: "The total number of records merged into the shared store",
	})

	SentimentRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enricher_sentiment_requests_total",
		Help: "The total number of sentiment coprocessor requests by status",
	}, []string{"status"})

	SentimentRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "enricher_sentiment_request_duration_seconds",
		Help:    "Duration of sentiment coprocessor requests",
		Buckets: prometheus.DefBuckets,
	})

	SentimentChunksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_sentiment_chunks_dropped_total",
		Help: "Chunks skipped after the sentiment retry budget was exhausted",
	})

	RateLimitWaits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enricher_rate_limit_waits_total",
		Help: "The total number of times the API quota guard blocked a caller",
	})

	RateLimitWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "enricher_rate_limit_wait_duration_seconds",
		Help:    "Time callers spent blocked on the API quota guard",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 120, 300, 600},
	})
)
