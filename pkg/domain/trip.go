package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trip represents a travel budget: a single base currency, a total budget
// and a date range. EndDate is nil for open-ended trips.
type Trip struct {
	ID           uuid.UUID
	Name         string
	BaseCurrency string
	TotalBudget  float64
	StartDate    time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTrip creates a Trip, validating its invariants.
func NewTrip(
	name, baseCurrency string,
	totalBudget float64,
	startDate time.Time,
	endDate *time.Time,
) (*Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: trip name is required", ErrValidation)
	}
	baseCurrency = strings.ToUpper(strings.TrimSpace(baseCurrency))
	if len(baseCurrency) != 3 {
		return nil, fmt.Errorf("%w: base currency must be a 3-letter code", ErrValidation)
	}
	if totalBudget < 0 {
		return nil, fmt.Errorf("%w: total budget must not be negative", ErrValidation)
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", ErrValidation)
	}
	return &Trip{
		ID:           uuid.New(),
		Name:         name,
		BaseCurrency: baseCurrency,
		TotalBudget:  totalBudget,
		StartDate:    startDate,
		EndDate:      endDate,
	}, nil
}
