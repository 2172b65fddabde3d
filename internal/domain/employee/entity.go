package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	// Salary is the monthly base salary before proration.
	Salary    decimal.Decimal
	CreatedBy string
	UpdatedBy string
	RequestIP string
	CreatedAt time.Time
	UpdatedAt time.Time
}
