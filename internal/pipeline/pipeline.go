package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/threadsight/comment-enricher/internal/core/domain"
	"github.com/threadsight/comment-enricher/internal/extract"
)

const (
	defaultWorkers     = 3
	defaultBatchSize   = 20
	defaultMaxWait     = 3 * time.Second
	defaultPollTimeout = 100 * time.Millisecond
)

// Options configures the pipeline. Zero values fall back to defaults.
type Options struct {
	Workers       int
	BatchSize     int
	MaxBatchWait  time.Duration
	PollTimeout   time.Duration
	QueueCapacity int
}

func (o *Options) applyDefaults() {
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}

	if o.BatchSize <= 0 {
		o.BatchSize = defaultBatchSize
	}

	if o.MaxBatchWait <= 0 {
		o.MaxBatchWait = defaultMaxWait
	}

	if o.PollTimeout <= 0 {
		o.PollTimeout = defaultPollTimeout
	}
}

// Pipeline runs a fixed pool of workers consuming the ingestion queue and
// merging enriched results into the shared store.
type Pipeline struct {
	opts   Options
	queue  *Queue
	store  *Store
	fanout *extract.FanOut
	scorer SentimentScorer
	logger *zerolog.Logger

	workers sync.WaitGroup
	running bool
	mu      sync.Mutex
}

func New(opts Options, fanout *extract.FanOut, scorer SentimentScorer, logger *zerolog.Logger) *Pipeline {
	opts.applyDefaults()

	if scorer == nil {
		scorer = noopScorer{}
	}

	return &Pipeline{
		opts:   opts,
		queue:  NewQueue(opts.QueueCapacity),
		store:  NewStore(),
		fanout: fanout,
		scorer: scorer,
		logger: logger,
	}
}

// Start launches the worker pool. Workers terminate cooperatively, one per
// shutdown signal delivered through the queue.
func (p *Pipeline) Start(ctx context.Context) {
	p.mu.Lock()
	p.running = true
	p.mu.Unlock()

	merger := NewMerger(p.store, p.logger)

	for i := 0; i < p.opts.Workers; i++ {
		w := &worker{
			id:          i,
			queue:       p.queue,
			acc:         newAccumulator(p.opts.BatchSize, p.opts.MaxBatchWait),
			fanout:      p.fanout,
			scorer:      p.scorer,
			merger:      merger,
			pollTimeout: p.opts.PollTimeout,
			logger:      p.logger.With().Int("worker", i).Logger(),
		}

		p.workers.Add(1)

		go func() {
			defer p.workers.Done()

			w.run(ctx)
		}()
	}

	p.logger.Info().
		Int("workers", p.opts.Workers).
		Int("batch_size", p.opts.BatchSize).
		Dur("max_batch_wait", p.opts.MaxBatchWait).
		Msg("pipeline started")
}

// Enqueue feeds one comment into the pipeline.
func (p *Pipeline) Enqueue(ctx context.Context, c domain.Comment) error {
	return p.queue.Enqueue(ctx, c)
}

// Drain signals every worker to shut down and waits for them to flush and
// exit. After Drain returns the store is stable and safe to read.
func (p *Pipeline) Drain(ctx context.Context) error {
	for i := 0; i < p.opts.Workers; i++ {
		if err := p.queue.EnqueueShutdown(ctx); err != nil {
			return err
		}
	}

	p.workers.Wait()

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	p.logger.Info().Int("records", p.store.Len()).Msg("pipeline drained")

	return nil
}

// Store exposes the shared record store for downstream consumers.
func (p *Pipeline) Store() *Store {
	return p.store
}

// Running reports whether the worker pool is active.
func (p *Pipeline) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.running
}
