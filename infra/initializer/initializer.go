package initializer

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wayfarer-app/wayfarer/infra"
	infracache "github.com/wayfarer-app/wayfarer/infra/cache"
	"github.com/wayfarer-app/wayfarer/infra/provider"
	expenserepo "github.com/wayfarer-app/wayfarer/infra/repository/expense"
	triprepo "github.com/wayfarer-app/wayfarer/infra/repository/trip"
	"github.com/wayfarer-app/wayfarer/pkg/cache"
	"github.com/wayfarer-app/wayfarer/pkg/config"
	"github.com/wayfarer-app/wayfarer/pkg/exchange"
	tripsvc "github.com/wayfarer-app/wayfarer/pkg/service/trip"
)

// Deps holds the wired application dependencies.
type Deps struct {
	Logger       *slog.Logger
	DB           *gorm.DB
	RateProvider *provider.FrankfurterProvider
	Resolver     *exchange.Resolver
	TripSvc      *tripsvc.Service
	Config       *config.App
}

// InitializeDependencies wires the full dependency graph: logger, database,
// rate cache (Redis when configured, in-memory otherwise), rate provider,
// resolver and services.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rateCache, err := newRateCache(cfg, logger)
	if err != nil {
		return nil, err
	}

	rateProvider := provider.NewFrankfurterProvider(cfg.RateProvider, logger)
	resolver := exchange.NewResolver(rateProvider, rateCache, logger)

	trips := triprepo.New(db)
	expenses := expenserepo.New(db)
	svc := tripsvc.New(trips, expenses, resolver, logger)

	return &Deps{
		Logger:       logger,
		DB:           db,
		RateProvider: rateProvider,
		Resolver:     resolver,
		TripSvc:      svc,
		Config:       cfg,
	}, nil
}

func newRateCache(cfg *config.App, logger *slog.Logger) (cache.RateCache, error) {
	if cfg.Redis.URL == "" {
		logger.Info("using in-memory rate cache", "ttl", cfg.RateCache.TTL)
		return infracache.NewMemoryRateCache(cfg.RateCache.TTL), nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.PoolSize = cfg.Redis.PoolSize
	opt.DialTimeout = cfg.Redis.DialTimeout
	opt.ReadTimeout = cfg.Redis.ReadTimeout
	opt.WriteTimeout = cfg.Redis.WriteTimeout

	logger.Info("using redis rate cache",
		"ttl", cfg.RateCache.TTL, "prefix", cfg.Redis.KeyPrefix)
	return infracache.NewRedisRateCache(opt, cfg.Redis.KeyPrefix, cfg.RateCache.TTL, logger), nil
}
