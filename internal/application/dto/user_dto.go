package dto

import "time"

// RegisterRequest entrada de registro de usuario.
type RegisterRequest struct {
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Role      string `json:"role"` // platform, company
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest alta de usuario de empresa (flujo admin). Avatar viaja
// como data URI base64.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"` // data URI, opcional
}

// UpdateUserRequest actualización parcial de usuario + perfil.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"` // data URI; reemplaza y elimina el anterior
}

// ProfileResponse perfil 1:1 del usuario.
type ProfileResponse struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Avatar *string `json:"avatar"`
}

// UserResponse salida de un usuario (sin hash de password).
type UserResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	Status    string          `json:"status"`
	Profile   ProfileResponse `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
