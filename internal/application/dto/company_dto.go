package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest entrada para crear una empresa. Logo viaja como data
// URI base64 (data:image/<tipo>;base64,...), nunca multipart.
type CreateCompanyRequest struct {
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Phone   string       `json:"phone"`
	Website string       `json:"website"`
	Address string       `json:"address"`
	City    string       `json:"city"`
	Country string       `json:"country"`
	Logo    string       `json:"logo"` // data URI, opcional
	Plan    *PlanRequest `json:"plan"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name    *string      `json:"name"`
	Email   *string      `json:"email"`
	Phone   *string      `json:"phone"`
	Website *string      `json:"website"`
	Address *string      `json:"address"`
	City    *string      `json:"city"`
	Country *string      `json:"country"`
	Logo    *string      `json:"logo"` // data URI; reemplaza y elimina el anterior
	Plan    *PlanRequest `json:"plan"`
}

// PlanRequest actualización parcial del plan: solo los campos enviados
// sobreescriben; el resto del sub-registro se conserva.
type PlanRequest struct {
	Name      *string          `json:"name"`
	Price     *decimal.Decimal `json:"price"`
	Status    *string          `json:"status"` // active, inactive, trial, expired
	Features  *[]string        `json:"features"`
	StartsAt  *time.Time       `json:"starts_at"`
	ExpiresAt *time.Time       `json:"expires_at"`
}

// PlanResponse salida del plan de la empresa.
type PlanResponse struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	Features  []string        `json:"features"`
	StartsAt  *time.Time      `json:"starts_at"`
	ExpiresAt *time.Time      `json:"expires_at"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Website   string       `json:"website"`
	Address   string       `json:"address"`
	City      string       `json:"city"`
	Country   string       `json:"country"`
	Logo      *string      `json:"logo"` // ruta relativa; el cliente la resuelve contra la base URL
	Plan      PlanResponse `json:"plan"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
