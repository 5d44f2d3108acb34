package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIBaseURL       string
	APIPageLimit     int
	MaxConcurrency   int
	RateLimitMs      int
	MaxRetries       int
	RequestTimeoutMs int

	// DataFile, when set, is read instead of calling the API.
	DataFile string

	StoreDriver  string
	StoreDSN     string
	FavoritesKey string

	HistogramBins int
	MinModelYear  int
	MaxModelYear  int

	CSVOutputPath string
	LogLevel      string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		APIBaseURL:       getEnv("API_BASE_URL", "https://fuel-economy-backend.onrender.com/api"),
		APIPageLimit:     getEnvInt("API_PAGE_LIMIT", 100),
		MaxConcurrency:   getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:      getEnvInt("RATE_LIMIT_MS", 200),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
		RequestTimeoutMs: getEnvInt("REQUEST_TIMEOUT_MS", 15000),

		DataFile: getEnv("DATA_FILE", ""),

		StoreDriver:  getEnv("STORE_DRIVER", "sqlite"),
		StoreDSN:     getEnv("STORE_DSN", "./output/favorites.db"),
		FavoritesKey: getEnv("FAVORITES_KEY", "fuel-economy-favorites"),

		HistogramBins: getEnvInt("HISTOGRAM_BINS", 15),
		MinModelYear:  getEnvInt("MIN_MODEL_YEAR", 1970),
		MaxModelYear:  getEnvInt("MAX_MODEL_YEAR", 1982),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/vehicles.csv"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
