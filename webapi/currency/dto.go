package currency

import "github.com/wayfarer-app/wayfarer/pkg/exchange"

// ConvertRequest represents the request body for a currency conversion.
// Amount is validated by the resolver so that missing-field and
// negative-amount cases produce the resolver's distinct messages.
type ConvertRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// ConvertResponse represents the conversion result returned to the caller.
type ConvertResponse struct {
	ConvertedAmount float64 `json:"convertedAmount"`
	ExchangeRate    float64 `json:"exchangeRate"`
	Cached          bool    `json:"cached"`
}

// ToResponse converts a resolver result to a response DTO.
func ToResponse(res *exchange.ConversionResult) *ConvertResponse {
	return &ConvertResponse{
		ConvertedAmount: res.ConvertedAmount,
		ExchangeRate:    res.ExchangeRate,
		Cached:          res.Cached,
	}
}
