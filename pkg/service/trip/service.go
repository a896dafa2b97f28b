package trip

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/pkg/domain"
	"github.com/wayfarer-app/wayfarer/pkg/exchange"
	"github.com/wayfarer-app/wayfarer/pkg/repository"
	"github.com/wayfarer-app/wayfarer/pkg/runway"
)

// Converter resolves a currency conversion. Satisfied by *exchange.Resolver.
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) (*exchange.ConversionResult, error)
}

// Service owns trip and expense use cases. Expense amounts are converted to
// the trip's base currency exactly once, at creation time; summaries only
// aggregate the stored base amounts.
type Service struct {
	trips    repository.TripRepository
	expenses repository.ExpenseRepository
	convert  Converter
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a trip service.
func New(
	trips repository.TripRepository,
	expenses repository.ExpenseRepository,
	converter Converter,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		trips:    trips,
		expenses: expenses,
		convert:  converter,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateTripInput carries the fields needed to create a trip.
type CreateTripInput struct {
	Name         string
	BaseCurrency string
	TotalBudget  float64
	StartDate    time.Time
	EndDate      *time.Time
}

// CreateTrip validates and persists a new trip.
func (s *Service) CreateTrip(ctx context.Context, in CreateTripInput) (*domain.Trip, error) {
	trip, err := domain.NewTrip(in.Name, in.BaseCurrency, in.TotalBudget, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	s.logger.Info("trip created", "trip_id", trip.ID, "name", trip.Name)
	return trip, nil
}

// GetTrip returns a trip by id.
func (s *Service) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	return s.trips.Get(ctx, id)
}

// ListTrips returns all trips.
func (s *Service) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.trips.List(ctx)
}

// UpdateTrip replaces a trip's editable fields.
func (s *Service) UpdateTrip(ctx context.Context, id uuid.UUID, in CreateTripInput) (*domain.Trip, error) {
	current, err := s.trips.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := domain.NewTrip(in.Name, in.BaseCurrency, in.TotalBudget, in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID

	if err := s.trips.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTrip removes a trip.
func (s *Service) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	return s.trips.Delete(ctx, id)
}

// AddExpenseInput carries the fields needed to record an expense. ManualRate
// overrides the resolver: the UI offers it as the fallback when the upstream
// provider is unavailable.
type AddExpenseInput struct {
	Date       time.Time
	Category   string
	Amount     float64
	Currency   string
	Note       string
	ManualRate *float64
}

// resolveRate determines the exchange rate and base amount for an expense,
// either from the caller-supplied manual rate or through the resolver.
func (s *Service) resolveRate(
	ctx context.Context,
	in AddExpenseInput,
	baseCurrency string,
) (rate, amountBase float64, err error) {
	if in.ManualRate != nil {
		if *in.ManualRate <= 0 {
			return 0, 0, fmt.Errorf("%w: exchange rate must be a positive number", domain.ErrValidation)
		}
		rate = exchange.Round6(*in.ManualRate)
		return rate, exchange.Round2(in.Amount * rate), nil
	}

	res, err := s.convert.Convert(ctx, in.Amount, in.Currency, baseCurrency)
	if err != nil {
		return 0, 0, err
	}
	return res.ExchangeRate, res.ConvertedAmount, nil
}

// AddExpense converts the amount into the trip's base currency and persists
// the expense with the amount and rate used, so the conversion is never
// recomputed.
func (s *Service) AddExpense(
	ctx context.Context,
	tripID uuid.UUID,
	in AddExpenseInput,
) (*domain.Expense, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	rate, amountBase, err := s.resolveRate(ctx, in, trip.BaseCurrency)
	if err != nil {
		return nil, err
	}

	expense, err := domain.NewExpense(
		trip.ID, in.Date, in.Category, in.Amount, in.Currency, amountBase, rate, in.Note)
	if err != nil {
		return nil, err
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		"trip_id", trip.ID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"currency", expense.Currency,
		"amount_base", expense.AmountBase,
	)
	return expense, nil
}

// UpdateExpense replaces an expense's fields, re-resolving the base amount and
// rate the same way AddExpense does.
func (s *Service) UpdateExpense(
	ctx context.Context,
	tripID, expenseID uuid.UUID,
	in AddExpenseInput,
) (*domain.Expense, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	current, err := s.expenses.Get(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if current.TripID != tripID {
		return nil, domain.ErrNotFound
	}

	rate, amountBase, err := s.resolveRate(ctx, in, trip.BaseCurrency)
	if err != nil {
		return nil, err
	}

	updated, err := domain.NewExpense(
		trip.ID, in.Date, in.Category, in.Amount, in.Currency, amountBase, rate, in.Note)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID

	if err := s.expenses.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("expense updated",
		"trip_id", trip.ID,
		"expense_id", updated.ID,
		"amount", updated.Amount,
		"currency", updated.Currency,
		"amount_base", updated.AmountBase,
	)
	return updated, nil
}

// ListExpenses returns a trip's expenses ordered by date.
func (s *Service) ListExpenses(ctx context.Context, tripID uuid.UUID) ([]*domain.Expense, error) {
	if _, err := s.trips.Get(ctx, tripID); err != nil {
		return nil, err
	}
	return s.expenses.ListByTrip(ctx, tripID)
}

// DeleteExpense removes an expense from a trip.
func (s *Service) DeleteExpense(ctx context.Context, tripID, expenseID uuid.UUID) error {
	expense, err := s.expenses.Get(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.TripID != tripID {
		return domain.ErrNotFound
	}
	return s.expenses.Delete(ctx, expenseID)
}

// Summary is a trip with its aggregate spend and runway metrics.
type Summary struct {
	Trip    *domain.Trip
	Metrics runway.Metrics
}

// GetSummary aggregates a trip's base-currency spend and evaluates its
// runway at the current time.
func (s *Service) GetSummary(ctx context.Context, tripID uuid.UUID) (*Summary, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var totalSpent float64
	for _, e := range expenses {
		totalSpent += e.AmountBase
	}

	metrics := runway.Compute(runway.Input{
		TotalBudget: trip.TotalBudget,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		TotalSpent:  totalSpent,
		Now:         s.now(),
	})

	return &Summary{Trip: trip, Metrics: metrics}, nil
}

// ExportCSV writes a trip's expenses as CSV, prefixed with comment lines
// describing the trip.
func (s *Service) ExportCSV(ctx context.Context, tripID uuid.UUID, w io.Writer) error {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return err
	}
	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("# Trip: %s\n# Base Currency: %s\n# Budget: %g\n# Exported: %s\n\n",
		trip.Name, trip.BaseCurrency, trip.TotalBudget, s.now().UTC().Format(time.RFC3339))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Date", "Category", "Amount", "Currency", "Amount (Base)", "Exchange Rate", "Note",
	}); err != nil {
		return err
	}
	for _, e := range expenses {
		if err := cw.Write([]string{
			e.Date.Format("2006-01-02"),
			e.Category,
			fmt.Sprintf("%.2f", e.Amount),
			e.Currency,
			fmt.Sprintf("%.2f", e.AmountBase),
			fmt.Sprintf("%.6f", e.ExchangeRate),
			e.Note,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
