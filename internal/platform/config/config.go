package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	apperrors "github.com/threadsight/comment-enricher/internal/core/errors"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Pipeline
	PipelineWorkers       int           `env:"PIPELINE_WORKERS" envDefault:"3"`
	PipelineBatchSize     int           `env:"PIPELINE_BATCH_SIZE" envDefault:"20"`
	PipelineMaxBatchWait  time.Duration `env:"PIPELINE_MAX_BATCH_WAIT" envDefault:"3s"`
	PipelinePollTimeout   time.Duration `env:"PIPELINE_POLL_TIMEOUT" envDefault:"100ms"`
	PipelineQueueCapacity int           `env:"PIPELINE_QUEUE_CAPACITY" envDefault:"1024"`

	// Extractor fan-out
	ExtractMaxConcurrent int `env:"EXTRACT_MAX_CONCURRENT" envDefault:"9"`
	ExtractSubWorkers    int `env:"EXTRACT_SUBWORKERS" envDefault:"5"`
	ExtractMaxChars      int `env:"EXTRACT_MAX_CHARS" envDefault:"2000"`

	// Sentiment coprocessor
	SentimentEnabled        bool          `env:"SENTIMENT_ENABLED" envDefault:"true"`
	SentimentURL            string        `env:"SENTIMENT_URL"`
	SentimentChunkSize      int           `env:"SENTIMENT_CHUNK_SIZE" envDefault:"1000"`
	SentimentMaxRetries     int           `env:"SENTIMENT_MAX_RETRIES" envDefault:"3"`
	SentimentRetryBaseDelay time.Duration `env:"SENTIMENT_RETRY_BASE_DELAY" envDefault:"1s"`
	SentimentTimeout        time.Duration `env:"SENTIMENT_TIMEOUT" envDefault:"10s"`

	// Upstream API quota
	APIRateLimit  int           `env:"API_RATE_LIMIT" envDefault:"950"`
	APIRateWindow time.Duration `env:"API_RATE_WINDOW" envDefault:"10m"`
	ProducerRPS   float64       `env:"PRODUCER_RPS" envDefault:"2"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects unrecoverable configuration before the pipeline accepts work.
func (c *Config) Validate() error {
	if c.SentimentEnabled && c.SentimentURL == "" {
		return fmt.Errorf("%w: SENTIMENT_URL is required when sentiment is enabled", apperrors.ErrInvalidConfig)
	}

	if c.PipelineWorkers <= 0 {
		return fmt.Errorf("%w: PIPELINE_WORKERS must be positive", apperrors.ErrInvalidConfig)
	}

	if c.PipelineBatchSize <= 0 {
		return fmt.Errorf("%w: PIPELINE_BATCH_SIZE must be positive", apperrors.ErrInvalidConfig)
	}

	if c.APIRateLimit <= 0 || c.APIRateWindow <= 0 {
		return fmt.Errorf("%w: API rate limit and window must be positive", apperrors.ErrInvalidConfig)
	}

	return nil
}
