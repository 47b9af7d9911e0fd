package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para el plan de una empresa.
const (
	PlanActive   = "active"
	PlanInactive = "inactive"
	PlanTrial    = "trial"
	PlanExpired  = "expired"
)

// Company representa una organización/tenant del sistema. Es la raíz de
// aislamiento de datos: todo recurso de negocio cuelga de un CompanyID.
type Company struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Website   string
	Address   string
	City      string
	Country   string
	Logo      *string // ruta relativa images/companies/<archivo>, nil si no hay logo
	Plan      Plan
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Plan subscripción de la empresa. Sub-registro tipado (se persiste como
// una sola columna JSONB); las actualizaciones parciales sobreescriben solo
// los campos enviados.
type Plan struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"` // ver constantes Plan*
	Features  []string        `json:"features"`
	StartsAt  *time.Time      `json:"starts_at"`
	ExpiresAt *time.Time      `json:"expires_at"`
}

// ValidPlanStatus indica si s es un estado de plan conocido.
func ValidPlanStatus(s string) bool {
	switch s {
	case PlanActive, PlanInactive, PlanTrial, PlanExpired:
		return true
	}
	return false
}
