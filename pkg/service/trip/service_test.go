package trip

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-app/wayfarer/pkg/domain"
	"github.com/wayfarer-app/wayfarer/pkg/exchange"
	"github.com/wayfarer-app/wayfarer/pkg/runway"
)

type memTripRepo struct {
	trips map[uuid.UUID]*domain.Trip
}

func newMemTripRepo() *memTripRepo {
	return &memTripRepo{trips: make(map[uuid.UUID]*domain.Trip)}
}

func (m *memTripRepo) Create(_ context.Context, t *domain.Trip) error {
	m.trips[t.ID] = t
	return nil
}

func (m *memTripRepo) Get(_ context.Context, id uuid.UUID) (*domain.Trip, error) {
	t, ok := m.trips[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *memTripRepo) List(_ context.Context) ([]*domain.Trip, error) {
	out := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTripRepo) Update(_ context.Context, t *domain.Trip) error {
	if _, ok := m.trips[t.ID]; !ok {
		return domain.ErrNotFound
	}
	m.trips[t.ID] = t
	return nil
}

func (m *memTripRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.trips[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

type memExpenseRepo struct {
	expenses map[uuid.UUID]*domain.Expense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[uuid.UUID]*domain.Expense)}
}

func (m *memExpenseRepo) Create(_ context.Context, e *domain.Expense) error {
	m.expenses[e.ID] = e
	return nil
}

func (m *memExpenseRepo) Get(_ context.Context, id uuid.UUID) (*domain.Expense, error) {
	e, ok := m.expenses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *memExpenseRepo) ListByTrip(_ context.Context, tripID uuid.UUID) ([]*domain.Expense, error) {
	out := make([]*domain.Expense, 0)
	for _, e := range m.expenses {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memExpenseRepo) Update(_ context.Context, e *domain.Expense) error {
	if _, ok := m.expenses[e.ID]; !ok {
		return domain.ErrNotFound
	}
	m.expenses[e.ID] = e
	return nil
}

func (m *memExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.expenses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

type stubConverter struct {
	result *exchange.ConversionResult
	err    error
	calls  int
}

func (s *stubConverter) Convert(_ context.Context, amount float64, from, to string) (*exchange.ConversionResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	if from == to {
		return &exchange.ConversionResult{ConvertedAmount: amount, ExchangeRate: 1}, nil
	}
	return &exchange.ConversionResult{
		ConvertedAmount: exchange.Round2(amount * 0.925),
		ExchangeRate:    0.925,
	}, nil
}

func newTestService(conv Converter) (*Service, *memTripRepo, *memExpenseRepo) {
	trips := newMemTripRepo()
	expenses := newMemExpenseRepo()
	svc := New(trips, expenses, conv, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, trips, expenses
}

func mustCreateTrip(t *testing.T, svc *Service, budget float64, start time.Time, end *time.Time) *domain.Trip {
	t.Helper()
	trip, err := svc.CreateTrip(context.Background(), CreateTripInput{
		Name:         "Japan 2026",
		BaseCurrency: "USD",
		TotalBudget:  budget,
		StartDate:    start,
		EndDate:      end,
	})
	require.NoError(t, err)
	return trip
}

func TestCreateTrip_Validation(t *testing.T) {
	svc, _, _ := newTestService(&stubConverter{})

	_, err := svc.CreateTrip(context.Background(), CreateTripInput{
		Name:         "bad",
		BaseCurrency: "DOLLARS",
		TotalBudget:  100,
		StartDate:    time.Now(),
	})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddExpense_ConvertsAndPersistsBaseAmount(t *testing.T) {
	conv := &stubConverter{}
	svc, _, expenses := newTestService(conv)
	trip := mustCreateTrip(t, svc, 1000, time.Now().AddDate(0, 0, -3), nil)

	exp, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date:     time.Now(),
		Category: "food",
		Amount:   100,
		Currency: "EUR",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, conv.calls)
	assert.InDelta(t, 92.5, exp.AmountBase, 0.0001)
	assert.InDelta(t, 0.925, exp.ExchangeRate, 0.0000001)
	assert.Len(t, expenses.expenses, 1)
}

func TestAddExpense_ManualRateSkipsConverter(t *testing.T) {
	conv := &stubConverter{}
	svc, _, _ := newTestService(conv)
	trip := mustCreateTrip(t, svc, 1000, time.Now().AddDate(0, 0, -3), nil)

	rate := 0.5
	exp, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date:       time.Now(),
		Category:   "food",
		Amount:     100,
		Currency:   "EUR",
		ManualRate: &rate,
	})

	require.NoError(t, err)
	assert.Zero(t, conv.calls)
	assert.InDelta(t, 50.0, exp.AmountBase, 0.0001)
	assert.InDelta(t, 0.5, exp.ExchangeRate, 0.0000001)
}

func TestAddExpense_ManualRateMustBePositive(t *testing.T) {
	svc, _, _ := newTestService(&stubConverter{})
	trip := mustCreateTrip(t, svc, 1000, time.Now().AddDate(0, 0, -3), nil)

	rate := -1.0
	_, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date:       time.Now(),
		Category:   "food",
		Amount:     100,
		Currency:   "EUR",
		ManualRate: &rate,
	})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddExpense_UnknownTrip(t *testing.T) {
	svc, _, _ := newTestService(&stubConverter{})

	_, err := svc.AddExpense(context.Background(), uuid.New(), AddExpenseInput{
		Date:     time.Now(),
		Category: "food",
		Amount:   100,
		Currency: "EUR",
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddExpense_ConversionErrorSurfaced(t *testing.T) {
	conv := &stubConverter{err: domain.ErrUpstream}
	svc, _, expenses := newTestService(conv)
	trip := mustCreateTrip(t, svc, 1000, time.Now().AddDate(0, 0, -3), nil)

	_, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date:     time.Now(),
		Category: "food",
		Amount:   100,
		Currency: "EUR",
	})

	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Empty(t, expenses.expenses, "failed conversions must not persist an expense")
}

func TestUpdateExpense_ReResolvesConversion(t *testing.T) {
	conv := &stubConverter{}
	svc, _, expenses := newTestService(conv)
	trip := mustCreateTrip(t, svc, 1000, time.Now().AddDate(0, 0, -3), nil)

	exp, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date:     time.Now(),
		Category: "food",
		Amount:   100,
		Currency: "EUR",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateExpense(context.Background(), trip.ID, exp.ID, AddExpenseInput{
		Date:     time.Now(),
		Category: "lodging",
		Amount:   200,
		Currency: "EUR",
	})

	require.NoError(t, err)
	assert.Equal(t, exp.ID, updated.ID)
	assert.Equal(t, "lodging", updated.Category)
	assert.InDelta(t, 185.0, updated.AmountBase, 0.0001)
	assert.Equal(t, 2, conv.calls)
	assert.Len(t, expenses.expenses, 1)
}

func TestUpdateExpense_ManualRateSkipsConverter(t *testing.T) {
	conv := &stubConverter{}
	svc, _, _ := newTestService(conv)
	trip := mustCreateTrip(t, svc, 1000, time.Now().AddDate(0, 0, -3), nil)

	rate := 0.5
	exp, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date:       time.Now(),
		Category:   "food",
		Amount:     100,
		Currency:   "EUR",
		ManualRate: &rate,
	})
	require.NoError(t, err)

	newRate := 0.6
	updated, err := svc.UpdateExpense(context.Background(), trip.ID, exp.ID, AddExpenseInput{
		Date:       time.Now(),
		Category:   "food",
		Amount:     100,
		Currency:   "EUR",
		ManualRate: &newRate,
	})

	require.NoError(t, err)
	assert.Zero(t, conv.calls)
	assert.InDelta(t, 60.0, updated.AmountBase, 0.0001)
	assert.InDelta(t, 0.6, updated.ExchangeRate, 0.0000001)
}

func TestUpdateExpense_WrongTrip(t *testing.T) {
	svc, _, _ := newTestService(&stubConverter{})
	trip := mustCreateTrip(t, svc, 1000, time.Now().AddDate(0, 0, -3), nil)
	other := mustCreateTrip(t, svc, 500, time.Now().AddDate(0, 0, -3), nil)

	exp, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date:     time.Now(),
		Category: "food",
		Amount:   10,
		Currency: "USD",
	})
	require.NoError(t, err)

	_, err = svc.UpdateExpense(context.Background(), other.ID, exp.ID, AddExpenseInput{
		Date:     time.Now(),
		Category: "food",
		Amount:   20,
		Currency: "USD",
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteExpense_WrongTrip(t *testing.T) {
	svc, _, _ := newTestService(&stubConverter{})
	trip := mustCreateTrip(t, svc, 1000, time.Now().AddDate(0, 0, -3), nil)

	exp, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date:     time.Now(),
		Category: "food",
		Amount:   10,
		Currency: "USD",
	})
	require.NoError(t, err)

	err = svc.DeleteExpense(context.Background(), uuid.New(), exp.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteExpense(context.Background(), trip.ID, exp.ID))
}

func TestGetSummary_AggregatesStoredBaseAmounts(t *testing.T) {
	svc, _, _ := newTestService(&stubConverter{})
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	trip := mustCreateTrip(t, svc, 1000, now.AddDate(0, 0, -10), nil)

	// 200 EUR at the stubbed 0.925 rate plus 215 USD: 400 base total.
	_, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date: now, Category: "lodging", Amount: 200, Currency: "EUR",
	})
	require.NoError(t, err)
	_, err = svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date: now, Category: "food", Amount: 215, Currency: "USD",
	})
	require.NoError(t, err)

	summary, err := svc.GetSummary(context.Background(), trip.ID)
	require.NoError(t, err)

	assert.InDelta(t, 400.0, summary.Metrics.TotalSpent, 0.0001)
	assert.InDelta(t, 40.0, summary.Metrics.DailyBurnRate, 0.0001)
	require.NotNil(t, summary.Metrics.DaysRemaining)
	assert.Equal(t, 15, *summary.Metrics.DaysRemaining)
	assert.Equal(t, runway.StatusOnTrack, summary.Metrics.Status)
}

func TestExportCSV(t *testing.T) {
	svc, _, _ := newTestService(&stubConverter{})
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	trip := mustCreateTrip(t, svc, 1000, now.AddDate(0, 0, -10), nil)
	_, err := svc.AddExpense(context.Background(), trip.ID, AddExpenseInput{
		Date: now, Category: "food", Amount: 100, Currency: "EUR", Note: "dinner, with wine",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), trip.ID, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Trip: Japan 2026\n"))
	assert.Contains(t, out, "# Base Currency: USD\n")
	assert.Contains(t, out, "# Budget: 1000\n")
	assert.Contains(t, out, "Date,Category,Amount,Currency,Amount (Base),Exchange Rate,Note")
	assert.Contains(t, out, `2026-03-11,food,100.00,EUR,92.50,0.925000,"dinner, with wine"`)
}
