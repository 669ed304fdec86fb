package inits

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/CorrelAid/svg_converter/models"
	"github.com/joho/godotenv"
)

// Config is the process wide configuration, read once at start up.
type Config struct {
	Port               string
	ScratchDir         string
	MaxFileSize        int64
	ConversionTimeout  time.Duration
	ScratchTTL         time.Duration
	CleanupInterval    time.Duration
	RateLimitPerMinute float64
	AllowedHosts       []string
	VTracerPath        string
}

// LoadEnv loads the given .env files into the environment. A missing file
// is not an error: production deployments set the variables directly.
func LoadEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
}

// ConfigFromEnv reads Config from environment variables, applying defaults
// for anything unset.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		ScratchDir:  getenv("SCRATCH_DIR", filepath.Join(os.TempDir(), "svgconvert")),
		VTracerPath: getenv("VTRACER_PATH", "vtracer"),
	}

	var err error
	if cfg.MaxFileSize, err = intEnv("MAX_FILE_SIZE", models.MaxFileSizeBytes); err != nil {
		return Config{}, err
	}
	if cfg.ConversionTimeout, err = durationEnv("CONVERSION_TIMEOUT", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ScratchTTL, err = durationEnv("SCRATCH_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CleanupInterval, err = durationEnv("CLEANUP_INTERVAL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitPerMinute, err = floatEnv("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return Config{}, err
	}

	for _, host := range strings.Split(os.Getenv("ALLOWED_HOSTS"), ",") {
		if host = strings.TrimSpace(host); host != "" {
			cfg.AllowedHosts = append(cfg.AllowedHosts, host)
		}
	}

	if cfg.ConversionTimeout <= 0 {
		return Config{}, fmt.Errorf("CONVERSION_TIMEOUT must be positive, got %s", cfg.ConversionTimeout)
	}
	// A running conversion must never outlive its scratch TTL.
	if cfg.ScratchTTL <= cfg.ConversionTimeout {
		return Config{}, fmt.Errorf("SCRATCH_TTL (%s) must be longer than CONVERSION_TIMEOUT (%s)", cfg.ScratchTTL, cfg.ConversionTimeout)
	}
	if cfg.CleanupInterval <= 0 {
		return Config{}, fmt.Errorf("CLEANUP_INTERVAL must be positive, got %s", cfg.CleanupInterval)
	}
	return cfg, nil
}

// EnsureDirectories creates the scratch directory if it is missing.
func (c Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.ScratchDir, 0o700); err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
