package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally seeding it from a
// .env file first.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("No .env file found in current directory")
		}
		return loadFromEnv()
	}

	for _, path := range envFilePath {
		if err := godotenv.Load(path); err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}
		logger.Info("Environment loaded from file", "path", path)
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"redis", maskValue(cfg.Redis.URL),
		"rate_provider_url", cfg.RateProvider.ApiUrl,
		"rate_cache_ttl", cfg.RateCache.TTL,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

func maskValue(v string) string {
	if len(v) <= 6 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-4:]
}
