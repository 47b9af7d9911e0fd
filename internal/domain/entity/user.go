package entity

import "time"

// Roles válidos para User. El alcance "platform" administra empresas y
// configuración global; "company" opera solo dentro de su tenant.
const (
	RolePlatform = "platform"
	RoleCompany  = "company"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // platform, company
	Status       string // active, inactive
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile datos personales 1:1 del usuario.
type Profile struct {
	Name   string
	Phone  string
	Avatar *string // ruta relativa images/profiles/<archivo>, nil si no hay avatar
}

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RolePlatform || r == RoleCompany
}
