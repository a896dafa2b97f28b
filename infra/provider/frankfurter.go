package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wayfarer-app/wayfarer/pkg/config"
	"github.com/wayfarer-app/wayfarer/pkg/domain"
	"github.com/wayfarer-app/wayfarer/pkg/exchange"
)

// FrankfurterProvider implements exchange.RateProvider against the
// Frankfurter latest-rates API. The API pre-multiplies: passing an amount
// returns the converted amount under rates[<to>], not a unit rate.
type FrankfurterProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// frankfurterResponse is the subset of the latest-rates payload we consume.
// Example: {"amount": 100, "base": "USD", "rates": {"EUR": 92.5}}
type frankfurterResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// NewFrankfurterProvider creates a provider from config.
func NewFrankfurterProvider(cfg *config.RateProvider, logger *slog.Logger) *FrankfurterProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FrankfurterProvider{
		baseURL: cfg.ApiUrl,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// Convert fetches the converted amount for the pair. A 404 response or a
// payload without the target code maps to domain.ErrUnsupportedPair; any
// other failure maps to domain.ErrUpstream.
func (p *FrankfurterProvider) Convert(
	ctx context.Context,
	amount float64,
	from, to string,
) (float64, error) {
	q := url.Values{}
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	q.Set("from", from)
	q.Set("to", to)
	reqURL := fmt.Sprintf("%s/latest?%s", p.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", domain.ErrUpstream, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedPair, from, to)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		p.logger.Warn("rate API returned non-success status",
			"status", resp.StatusCode, "body", string(body))
		return 0, fmt.Errorf("%w: API returned status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var apiResp frankfurterResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstream, err)
	}

	converted, ok := apiResp.Rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedPair, from, to)
	}

	return converted, nil
}

// Name returns the provider's name.
func (p *FrankfurterProvider) Name() string {
	return "frankfurter"
}

// IsHealthy reports whether the rate API answers on its latest-rates
// endpoint. The client's configured timeout bounds the call.
func (p *FrankfurterProvider) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/latest", nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close() //nolint:errcheck

	return resp.StatusCode == http.StatusOK
}

var _ exchange.RateProvider = (*FrankfurterProvider)(nil)
