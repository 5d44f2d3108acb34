package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("API_PAGE_LIMIT", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := FromEnv()
	assert.Equal(t, 100, cfg.APIPageLimit)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "fuel-economy-favorites", cfg.FavoritesKey)
	assert.Equal(t, 15, cfg.HistogramBins)
	assert.Equal(t, 1970, cfg.MinModelYear)
	assert.Equal(t, 1982, cfg.MaxModelYear)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:9000/api")
	t.Setenv("MAX_CONCURRENCY", "8")
	t.Setenv("STORE_DRIVER", "memory")

	cfg := FromEnv()
	assert.Equal(t, "http://localhost:9000/api", cfg.APIBaseURL)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "memory", cfg.StoreDriver)
}

func TestFromEnvIgnoresBadInts(t *testing.T) {
	t.Setenv("HISTOGRAM_BINS", "lots")

	cfg := FromEnv()
	assert.Equal(t, 15, cfg.HistogramBins)
}
