package entity

import "time"

// Customer representa un cliente de la empresa. Scoped estrictamente por
// CompanyID en toda lectura y escritura.
type Customer struct {
	ID          string
	CompanyID   string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	City        string
	Country     string
	ExternalRef *string // id de referencia externo, único por empresa cuando existe
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
