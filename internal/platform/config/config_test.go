package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/threadsight/comment-enricher/internal/core/errors"
)

func validConfig() *Config {
	return &Config{
		PipelineWorkers:   3,
		PipelineBatchSize: 20,
		SentimentEnabled:  true,
		SentimentURL:      "http://localhost:5000/score",
		APIRateLimit:      950,
		APIRateWindow:     10 * time.Minute,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_SentimentURLRequiredWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.SentimentURL = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)

	// Disabled sentiment needs no URL.
	cfg.SentimentEnabled = false
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveKnobs(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"workers":     func(c *Config) { c.PipelineWorkers = 0 },
		"batch size":  func(c *Config) { c.PipelineBatchSize = -1 },
		"rate limit":  func(c *Config) { c.APIRateLimit = 0 },
		"rate window": func(c *Config) { c.APIRateWindow = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), apperrors.ErrInvalidConfig)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SENTIMENT_URL", "http://localhost:5000/score")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.PipelineWorkers)
	assert.Equal(t, 20, cfg.PipelineBatchSize)
	assert.Equal(t, 3*time.Second, cfg.PipelineMaxBatchWait)
	assert.Equal(t, 100*time.Millisecond, cfg.PipelinePollTimeout)
	assert.Equal(t, 9, cfg.ExtractMaxConcurrent)
	assert.Equal(t, 5, cfg.ExtractSubWorkers)
	assert.Equal(t, 950, cfg.APIRateLimit)
	assert.Equal(t, 10*time.Minute, cfg.APIRateWindow)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SENTIMENT_URL", "http://scoring:5000/score")
	t.Setenv("PIPELINE_WORKERS", "8")
	t.Setenv("PIPELINE_MAX_BATCH_WAIT", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.PipelineWorkers)
	assert.Equal(t, 500*time.Millisecond, cfg.PipelineMaxBatchWait)
	assert.Equal(t, "http://scoring:5000/score", cfg.SentimentURL)
}
