package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Expense is a single spend entry on a trip. Amount is in the currency the
// money was spent in; AmountBase is the same value expressed in the trip's
// base currency, converted once at creation time with ExchangeRate.
// AmountBase is never recomputed afterwards.
type Expense struct {
	ID           uuid.UUID
	TripID       uuid.UUID
	Date         time.Time
	Category     string
	Amount       float64
	Currency     string
	AmountBase   float64
	ExchangeRate float64
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewExpense creates an Expense, validating its invariants. The base-currency
// amount and rate must already be resolved by the caller.
func NewExpense(
	tripID uuid.UUID,
	date time.Time,
	category string,
	amount float64,
	currency string,
	amountBase, exchangeRate float64,
	note string,
) (*Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("%w: expense category is required", ErrValidation)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency must be a 3-letter code", ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}
	if amountBase < 0 {
		return nil, fmt.Errorf("%w: base amount must not be negative", ErrValidation)
	}
	if exchangeRate <= 0 {
		return nil, fmt.Errorf("%w: exchange rate must be a positive number", ErrValidation)
	}
	return &Expense{
		ID:           uuid.New(),
		TripID:       tripID,
		Date:         date,
		Category:     category,
		Amount:       amount,
		Currency:     currency,
		AmountBase:   amountBase,
		ExchangeRate: exchangeRate,
		Note:         note,
	}, nil
}
