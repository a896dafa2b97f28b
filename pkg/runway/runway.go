// Package runway derives budget pacing signals from a trip's budget, date
// range and accumulated base-currency spend. It is pure: no I/O, no shared
// state, safe for concurrent use.
package runway

import (
	"math"
	"time"
)

// Status classifies how a trip is tracking against its budget.
type Status string

const (
	StatusNoSpending Status = "no-spending"
	StatusOnTrack    Status = "on-track"
	StatusAtRisk     Status = "at-risk"
	StatusOverBudget Status = "over-budget"
)

// Input are the parameters the calculator reads. Now is injectable; the zero
// value means time.Now(). EndDate is nil for open-ended trips. TotalSpent is
// the sum of all expense base amounts and is assumed non-negative and already
// currency-normalized.
type Input struct {
	TotalBudget float64
	StartDate   time.Time
	EndDate     *time.Time
	TotalSpent  float64
	Now         time.Time
}

// Metrics are the computed pacing signals. When the trip has not started,
// pacing fields stay zero and Status is empty unless nothing has been spent;
// callers should render a neutral pending state.
type Metrics struct {
	TotalSpent    float64
	Remaining     float64
	TripStarted   bool
	DaysElapsed   int
	DailyBurnRate float64
	// DaysRemaining is nil when there is no spending to project from.
	DaysRemaining *int
	// ProjectedDepletion is a calendar date (midnight), set only when
	// DaysRemaining is a positive number.
	ProjectedDepletion *time.Time
	Status             Status
	// SurplusDays is how many days past the end date the budget stretches
	// (on-track trips with an end date).
	SurplusDays int
	// ShortfallDays is how many days before the end date the budget runs out
	// (at-risk trips).
	ShortfallDays int
	// Overage is the absolute amount spent beyond the budget (over-budget trips).
	Overage float64
}

// Compute evaluates the trip's pacing at in.Now.
//
// Elapsed days use the elapsed-ceil convention, floored at 1 so day-of-start
// never divides by zero, and are never clamped to the trip's duration: a trip
// running past its end date keeps counting against the original start.
func Compute(in Input) Metrics {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	m := Metrics{
		TotalSpent: in.TotalSpent,
		Remaining:  in.TotalBudget - in.TotalSpent,
	}

	if in.TotalSpent == 0 {
		m.Status = StatusNoSpending
	}

	m.TripStarted = !now.Before(in.StartDate)
	if !m.TripStarted {
		return m
	}

	m.DaysElapsed = int(math.Ceil(now.Sub(in.StartDate).Hours() / 24))
	if m.DaysElapsed < 1 {
		m.DaysElapsed = 1
	}
	m.DailyBurnRate = in.TotalSpent / float64(m.DaysElapsed)

	// Projection works on calendar days: the depletion date is anchored to
	// the start of today so comparing it against a midnight end date never
	// loses a day to now's time of day.
	today := startOfDay(now)

	if m.DailyBurnRate > 0 {
		days := int(math.Floor(m.Remaining / m.DailyBurnRate))
		m.DaysRemaining = &days
		if days > 0 {
			depletion := today.AddDate(0, 0, days)
			m.ProjectedDepletion = &depletion
		}
	}

	if in.TotalSpent == 0 {
		return m
	}

	switch {
	case m.Remaining <= 0:
		m.Status = StatusOverBudget
		m.Overage = -m.Remaining
	case in.EndDate != nil && m.ProjectedDepletion != nil:
		if !m.ProjectedDepletion.Before(*in.EndDate) {
			m.Status = StatusOnTrack
			m.SurplusDays = daysBetween(*in.EndDate, *m.ProjectedDepletion)
		} else {
			m.Status = StatusAtRisk
			m.ShortfallDays = daysBetween(*m.ProjectedDepletion, *in.EndDate)
		}
	case in.EndDate != nil:
		// Remaining budget is below one day's burn: depletion lands within
		// the day, ahead of the end date.
		m.Status = StatusAtRisk
		if d := daysBetween(today, *in.EndDate); d > 0 {
			m.ShortfallDays = d
		}
	case m.DaysRemaining != nil && *m.DaysRemaining > 0:
		m.Status = StatusOnTrack
	default:
		// Open-ended with a positive remaining budget below one day's burn:
		// no runway to project, so no pacing claim is made.
		m.Status = StatusNoSpending
	}

	return m
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
