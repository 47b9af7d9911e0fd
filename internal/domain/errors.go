package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del servicio de imágenes (data URI base64).
var (
	ErrImageMalformed = errors.New("la imagen no tiene formato data URI válido")
	ErrImageType      = errors.New("tipo de imagen no permitido")
	ErrImageDecode    = errors.New("no se pudo decodificar la imagen base64")
)

// ValidationError acumula errores de validación por campo.
// El handler HTTP lo serializa como {message, errors: {campo: [mensajes]}} con 422.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidation construye un acumulador vacío.
func NewValidation() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add registra un mensaje de error para un campo.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// AddRequired registra el error estándar de campo requerido.
func (e *ValidationError) AddRequired(field string) {
	e.Add(field, "el campo "+field+" es requerido")
}

// HasErrors indica si se registró al menos un error.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Err devuelve el acumulador como error, o nil si no hay errores.
func (e *ValidationError) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// Error implementa error; lista los campos en orden estable.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validación fallida: %s", strings.Join(fields, ", "))
}

// AsValidation devuelve el *ValidationError contenido en err, si lo hay.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
