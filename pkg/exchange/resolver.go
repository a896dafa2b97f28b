package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/wayfarer-app/wayfarer/pkg/cache"
	"github.com/wayfarer-app/wayfarer/pkg/domain"
)

// RateProvider is the upstream rate lookup. It returns the amount already
// converted into the target currency (not a bare rate). Implementations map
// an unknown currency code to domain.ErrUnsupportedPair and any other failure
// to domain.ErrUpstream.
type RateProvider interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
	Name() string
}

// ConversionResult is the outcome of a single conversion. ConvertedAmount is
// rounded to 2 decimal places, ExchangeRate to 6. Cached reports whether the
// rate came from the cache rather than the provider.
type ConversionResult struct {
	ConvertedAmount float64 `json:"converted_amount"`
	ExchangeRate    float64 `json:"exchange_rate"`
	Cached          bool    `json:"cached"`
}

// Resolver converts amounts between currencies, caching rates per ordered
// pair so repeated requests within the TTL window skip the upstream call.
// The resolver holds no state of its own beyond the shared cache.
type Resolver struct {
	provider RateProvider
	cache    cache.RateCache
	logger   *slog.Logger
	now      func() time.Time
}

// NewResolver creates a Resolver backed by the given provider and cache.
func NewResolver(provider RateProvider, rateCache cache.RateCache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		provider: provider,
		cache:    rateCache,
		logger:   logger,
		now:      time.Now,
	}
}

// PairKey returns the ordered cache key for a currency pair. The reverse
// pair is a distinct key and is never derived by inversion.
func PairKey(from, to string) string {
	return strings.ToUpper(from) + "-" + strings.ToUpper(to)
}

// Convert resolves an exchange rate for the pair and applies it to amount.
//
// Same-currency requests short-circuit with rate 1 and Cached=false; no cache
// lookup or upstream call happens. Otherwise the cache is consulted first and
// the provider is only called on a miss, after which the fresh rate is stored.
func (r *Resolver) Convert(
	ctx context.Context,
	amount float64,
	from, to string,
) (*ConversionResult, error) {
	if err := validateRequest(amount, from, to); err != nil {
		return nil, err
	}

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return &ConversionResult{
			ConvertedAmount: amount,
			ExchangeRate:    1,
			Cached:          false,
		}, nil
	}

	key := PairKey(from, to)

	entry, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Error("rate cache read failed", "key", key, "error", err)
	}
	if ok {
		r.logger.Debug("rate cache hit", "key", key, "rate", entry.Rate)
		return &ConversionResult{
			ConvertedAmount: Round2(amount * entry.Rate),
			ExchangeRate:    entry.Rate,
			Cached:          true,
		}, nil
	}

	converted, err := r.provider.Convert(ctx, amount, from, to)
	if err != nil {
		return nil, err
	}

	rate := Round6(converted / amount)
	if err := r.cache.Put(ctx, key, rate, r.now()); err != nil {
		r.logger.Error("rate cache write failed", "key", key, "error", err)
	}

	r.logger.Info("rate fetched from provider",
		"key", key, "rate", rate, "provider", r.provider.Name())

	return &ConversionResult{
		ConvertedAmount: Round2(converted),
		ExchangeRate:    rate,
		Cached:          false,
	}, nil
}

func validateRequest(amount float64, from, to string) error {
	if amount == 0 || strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: missing required fields: amount, from, to", domain.ErrValidation)
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a positive number", domain.ErrValidation)
	}
	return nil
}

// Round2 rounds to 2 decimal places, the precision used for amounts.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round6 rounds to 6 decimal places, the precision used for rates.
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
