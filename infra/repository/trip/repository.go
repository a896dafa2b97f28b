package trip

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	infrarepo "github.com/wayfarer-app/wayfarer/infra/repository"
	"github.com/wayfarer-app/wayfarer/pkg/domain"
	"github.com/wayfarer-app/wayfarer/pkg/repository"
)

type tripRepository struct {
	db *gorm.DB
}

// New creates a trip repository using the provided *gorm.DB.
func New(db *gorm.DB) repository.TripRepository {
	return &tripRepository{db: db}
}

// Create implements repository.TripRepository.
func (r *tripRepository) Create(ctx context.Context, t *domain.Trip) error {
	model := mapDomainToModel(t)
	err := r.db.WithContext(ctx).Create(&model).Error
	return infrarepo.MapGormErrorToDomain(err)
}

// Get implements repository.TripRepository.
func (r *tripRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	var model Trip
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDomain(&model), nil
}

// List implements repository.TripRepository.
func (r *tripRepository) List(ctx context.Context) ([]*domain.Trip, error) {
	var models []Trip
	if err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&models).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	trips := make([]*domain.Trip, 0, len(models))
	for i := range models {
		trips = append(trips, mapModelToDomain(&models[i]))
	}
	return trips, nil
}

// Update implements repository.TripRepository.
func (r *tripRepository) Update(ctx context.Context, t *domain.Trip) error {
	updates := map[string]any{
		"name":          t.Name,
		"base_currency": t.BaseCurrency,
		"total_budget":  t.TotalBudget,
		"start_date":    t.StartDate,
		"end_date":      t.EndDate,
	}
	res := r.db.WithContext(ctx).Model(&Trip{}).Where("id = ?", t.ID).Updates(updates)
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete implements repository.TripRepository.
func (r *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Trip{}, "id = ?", id)
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapDomainToModel(t *domain.Trip) Trip {
	return Trip{
		ID:           t.ID,
		Name:         t.Name,
		BaseCurrency: t.BaseCurrency,
		TotalBudget:  t.TotalBudget,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
	}
}

func mapModelToDomain(m *Trip) *domain.Trip {
	return &domain.Trip{
		ID:           m.ID,
		Name:         m.Name,
		BaseCurrency: m.BaseCurrency,
		TotalBudget:  m.TotalBudget,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
