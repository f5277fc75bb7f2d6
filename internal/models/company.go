package models

// Company is the row shape of the companies table.
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	Plan      string `db:"plan"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
