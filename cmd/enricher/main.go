package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/threadsight/comment-enricher/internal/extract"
	"github.com/threadsight/comment-enricher/internal/ingest"
	"github.com/threadsight/comment-enricher/internal/pipeline"
	"github.com/threadsight/comment-enricher/internal/platform/config"
	"github.com/threadsight/comment-enricher/internal/platform/observability"
	"github.com/threadsight/comment-enricher/internal/ratelimit"
	"github.com/threadsight/comment-enricher/internal/sentiment"
)

const drainTimeout = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipe := buildPipeline(cfg, &logger)

	server := observability.NewServer(cfg.HealthPort, pipe.Running, &logger)

	go func() {
		if err := server.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	pipe.Start(ctx)

	guard := ratelimit.New(cfg.APIRateLimit, cfg.APIRateWindow, &logger)
	source := ingest.NewReaderSource(os.Stdin)
	feeder := ingest.NewFeeder(source, guard, cfg.ProducerRPS, pipe, &logger)

	if err := feeder.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("producer stopped with error")
	}

	// Drain on a fresh context: a signal cancels ctx, but the workers still
	// get to flush their partial batches.
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := pipe.Drain(drainCtx); err != nil {
		logger.Fatal().Err(err).Msg("pipeline drain failed")
	}

	if err := writeRecords(os.Stdout, pipe.Store()); err != nil {
		logger.Fatal().Err(err).Msg("failed to write enriched records")
	}
}

func buildPipeline(cfg *config.Config, logger *zerolog.Logger) *pipeline.Pipeline {
	rules := extract.DefaultRules()
	extractors := extract.DefaultExtractors(rules, nil, cfg.ExtractSubWorkers)
	fanout := extract.NewFanOut(extractors, cfg.ExtractMaxConcurrent, cfg.ExtractMaxChars, logger)

	var scorer pipeline.SentimentScorer
	if cfg.SentimentEnabled {
		scorer = sentiment.New(sentiment.Config{
			URL:        cfg.SentimentURL,
			ChunkSize:  cfg.SentimentChunkSize,
			MaxRetries: cfg.SentimentMaxRetries,
			BaseDelay:  cfg.SentimentRetryBaseDelay,
			Timeout:    cfg.SentimentTimeout,
		}, logger)
	}

	opts := pipeline.Options{
		Workers:       cfg.PipelineWorkers,
		BatchSize:     cfg.PipelineBatchSize,
		MaxBatchWait:  cfg.PipelineMaxBatchWait,
		PollTimeout:   cfg.PipelinePollTimeout,
		QueueCapacity: cfg.PipelineQueueCapacity,
	}

	return pipeline.New(opts, fanout, scorer, logger)
}

func writeRecords(w *os.File, store *pipeline.Store) error {
	enc := json.NewEncoder(w)

	for _, rec := range store.Snapshot() {
		if err := enc.Encode(&rec); err != nil {
			return err
		}
	}

	return nil
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
