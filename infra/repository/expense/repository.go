package expense

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	infrarepo "github.com/wayfarer-app/wayfarer/infra/repository"
	"github.com/wayfarer-app/wayfarer/pkg/domain"
	"github.com/wayfarer-app/wayfarer/pkg/repository"
)

type expenseRepository struct {
	db *gorm.DB
}

// New creates an expense repository using the provided *gorm.DB.
func New(db *gorm.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create implements repository.ExpenseRepository.
func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	model := mapDomainToModel(e)
	err := r.db.WithContext(ctx).Create(&model).Error
	return infrarepo.MapGormErrorToDomain(err)
}

// Get implements repository.ExpenseRepository.
func (r *expenseRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	var model Expense
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&model), nil
}

// ListByTrip implements repository.ExpenseRepository; results are ordered by
// date ascending.
func (r *expenseRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.Expense, error) {
	var models []Expense
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("date ASC").
		Find(&models).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	expenses := make([]*domain.Expense, 0, len(models))
	for i := range models {
		expenses = append(expenses, mapModelToDomain(&models[i]))
	}
	return expenses, nil
}

// Update implements repository.ExpenseRepository.
func (r *expenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	updates := map[string]any{
		"date":          e.Date,
		"category":      e.Category,
		"amount":        e.Amount,
		"currency":      e.Currency,
		"amount_base":   e.AmountBase,
		"exchange_rate": e.ExchangeRate,
		"note":          e.Note,
	}
	res := r.db.WithContext(ctx).Model(&Expense{}).Where("id = ?", e.ID).Updates(updates)
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete implements repository.ExpenseRepository.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Expense{}, "id = ?", id)
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapDomainToModel(e *domain.Expense) Expense {
	return Expense{
		ID:           e.ID,
		TripID:       e.TripID,
		Date:         e.Date,
		Category:     e.Category,
		Amount:       e.Amount,
		Currency:     e.Currency,
		AmountBase:   e.AmountBase,
		ExchangeRate: e.ExchangeRate,
		Note:         e.Note,
	}
}

func mapModelToDomain(m *Expense) *domain.Expense {
	return &domain.Expense{
		ID:           m.ID,
		TripID:       m.TripID,
		Date:         m.Date,
		Category:     m.Category,
		Amount:       m.Amount,
		Currency:     m.Currency,
		AmountBase:   m.AmountBase,
		ExchangeRate: m.ExchangeRate,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
