package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the row shape of the users table.
type User struct {
	UserID       string              `db:"user_id"`
	Name         string              `db:"name"`
	Email        string              `db:"email"`
	PasswordHash string              `db:"password_hash"`
	Role         string              `db:"role"`
	CompanyID    *string             `db:"company_id"`
	HourlyRate   decimal.NullDecimal `db:"hourly_rate"`
	ManagerID    *string             `db:"manager_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
