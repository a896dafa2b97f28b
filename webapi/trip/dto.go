package trip

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/pkg/domain"
	"github.com/wayfarer-app/wayfarer/pkg/runway"
	tripsvc "github.com/wayfarer-app/wayfarer/pkg/service/trip"
)

const dateLayout = "2006-01-02"

// CreateTripRequest represents the request body for creating or updating a
// trip. Dates are ISO 8601 calendar dates; end_date is omitted for
// open-ended trips.
type CreateTripRequest struct {
	Name         string  `json:"name" validate:"required"`
	BaseCurrency string  `json:"base_currency" validate:"required,len=3"`
	TotalBudget  float64 `json:"total_budget" validate:"gte=0"`
	StartDate    string  `json:"start_date" validate:"required"`
	EndDate      string  `json:"end_date,omitempty"`
}

// ToServiceInput converts the request into a service input, parsing dates.
func (r *CreateTripRequest) ToServiceInput() (tripsvc.CreateTripInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return tripsvc.CreateTripInput{},
			fmt.Errorf("%w: start_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	var end *time.Time
	if r.EndDate != "" {
		parsed, err := time.Parse(dateLayout, r.EndDate)
		if err != nil {
			return tripsvc.CreateTripInput{},
				fmt.Errorf("%w: end_date must be YYYY-MM-DD", domain.ErrValidation)
		}
		end = &parsed
	}
	return tripsvc.CreateTripInput{
		Name:         r.Name,
		BaseCurrency: r.BaseCurrency,
		TotalBudget:  r.TotalBudget,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// AddExpenseRequest represents the request body for recording an expense.
// ExchangeRate is the optional manual override used when the rate provider
// is unavailable.
type AddExpenseRequest struct {
	Date         string   `json:"date" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Amount       float64  `json:"amount" validate:"required,gt=0"`
	Currency     string   `json:"currency" validate:"required,len=3"`
	Note         string   `json:"note,omitempty"`
	ExchangeRate *float64 `json:"exchange_rate,omitempty"`
}

// ToServiceInput converts the request into a service input, parsing the date.
func (r *AddExpenseRequest) ToServiceInput() (tripsvc.AddExpenseInput, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return tripsvc.AddExpenseInput{},
			fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return tripsvc.AddExpenseInput{
		Date:       date,
		Category:   r.Category,
		Amount:     r.Amount,
		Currency:   r.Currency,
		Note:       r.Note,
		ManualRate: r.ExchangeRate,
	}, nil
}

// TripResponse represents the response structure for trip data.
type TripResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"base_currency"`
	TotalBudget  float64   `json:"total_budget"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToTripResponse converts a trip entity to a response DTO.
func ToTripResponse(t *domain.Trip) *TripResponse {
	resp := &TripResponse{
		ID:           t.ID,
		Name:         t.Name,
		BaseCurrency: t.BaseCurrency,
		TotalBudget:  t.TotalBudget,
		StartDate:    t.StartDate.Format(dateLayout),
		CreatedAt:    t.CreatedAt,
	}
	if t.EndDate != nil {
		end := t.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	return resp
}

// ExpenseResponse represents the response structure for expense data.
type ExpenseResponse struct {
	ID           uuid.UUID `json:"id"`
	TripID       uuid.UUID `json:"trip_id"`
	Date         string    `json:"date"`
	Category     string    `json:"category"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	AmountBase   float64   `json:"amount_base"`
	ExchangeRate float64   `json:"exchange_rate"`
	Note         string    `json:"note,omitempty"`
}

// ToExpenseResponse converts an expense entity to a response DTO.
func ToExpenseResponse(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:           e.ID,
		TripID:       e.TripID,
		Date:         e.Date.Format(dateLayout),
		Category:     e.Category,
		Amount:       e.Amount,
		Currency:     e.Currency,
		AmountBase:   e.AmountBase,
		ExchangeRate: e.ExchangeRate,
		Note:         e.Note,
	}
}

// RunwayResponse represents the budget pacing block of a trip summary.
// Status is empty until the trip has started.
type RunwayResponse struct {
	TotalSpent         float64       `json:"total_spent"`
	Remaining          float64       `json:"remaining"`
	TripStarted        bool          `json:"trip_started"`
	DaysElapsed        int           `json:"days_elapsed"`
	DailyBurnRate      float64       `json:"daily_burn_rate"`
	DaysRemaining      *int          `json:"days_remaining,omitempty"`
	ProjectedDepletion *string       `json:"projected_depletion,omitempty"`
	Status             runway.Status `json:"status,omitempty"`
	SurplusDays        int           `json:"surplus_days,omitempty"`
	ShortfallDays      int           `json:"shortfall_days,omitempty"`
	Overage            float64       `json:"overage,omitempty"`
}

// SummaryResponse is a trip with its runway metrics.
type SummaryResponse struct {
	Trip   *TripResponse  `json:"trip"`
	Runway RunwayResponse `json:"runway"`
}

// ToSummaryResponse converts a service summary to a response DTO.
func ToSummaryResponse(s *tripsvc.Summary) *SummaryResponse {
	m := s.Metrics
	resp := &SummaryResponse{
		Trip: ToTripResponse(s.Trip),
		Runway: RunwayResponse{
			TotalSpent:    m.TotalSpent,
			Remaining:     m.Remaining,
			TripStarted:   m.TripStarted,
			DaysElapsed:   m.DaysElapsed,
			DailyBurnRate: m.DailyBurnRate,
			DaysRemaining: m.DaysRemaining,
			Status:        m.Status,
			SurplusDays:   m.SurplusDays,
			ShortfallDays: m.ShortfallDays,
			Overage:       m.Overage,
		},
	}
	if m.ProjectedDepletion != nil {
		d := m.ProjectedDepletion.Format(dateLayout)
		resp.Runway.ProjectedDepletion = &d
	}
	return resp
}
