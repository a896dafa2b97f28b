package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/pkg/domain"
)

// TripRepository defines the interface for trip data access operations.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	List(ctx context.Context) ([]*domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseRepository defines the interface for expense data access operations.
// ListByTrip returns expenses ordered by date ascending.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}
