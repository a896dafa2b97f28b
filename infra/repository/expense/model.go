package expense

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents an expense record in the database. AmountBase and
// ExchangeRate are written once at creation time.
type Expense struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	TripID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Date         time.Time `gorm:"type:date;not null"`
	Category     string    `gorm:"not null"`
	Amount       float64   `gorm:"not null"`
	Currency     string    `gorm:"type:varchar(3);not null"`
	AmountBase   float64   `gorm:"not null"`
	ExchangeRate float64   `gorm:"not null"`
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Expense model.
func (Expense) TableName() string {
	return "expenses"
}
