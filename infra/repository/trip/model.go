package trip

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a trip record in the database.
type Trip struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name         string     `gorm:"not null"`
	BaseCurrency string     `gorm:"type:varchar(3);not null;default:'USD'"`
	TotalBudget  float64    `gorm:"not null;default:0"`
	StartDate    time.Time  `gorm:"type:date;not null"`
	EndDate      *time.Time `gorm:"type:date"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Trip model.
func (Trip) TableName() string {
	return "trips"
}
