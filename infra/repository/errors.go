package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wayfarer-app/wayfarer/pkg/domain"
)

// MapGormErrorToDomain converts GORM errors to domain errors so database
// concerns stay inside the infrastructure layer.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
