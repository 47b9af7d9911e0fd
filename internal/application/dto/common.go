package dto

import "fmt"

// PageQuery paginación y búsqueda para listados (?page=&per_page=&search=).
type PageQuery struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Search  string `query:"search"`
}

// Defaults aplica los valores por defecto: página 1, 10 por página, tope 100.
func (p *PageQuery) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset devuelve el offset SQL equivalente.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// MessageResponse envoltorio estándar de éxito: {message, data}.
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse cuerpo de error HTTP: {message, errors?}.
// Errors solo se llena en errores de validación (422), keyed por campo.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// PagedResponse respuesta de listado paginado al estilo del dashboard SPA.
type PagedResponse struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
	Total       int         `json:"total"`
	NextPageURL *string     `json:"next_page_url"`
	PrevPageURL *string     `json:"prev_page_url"`
}

// NewPagedResponse arma la página con metadatos y URLs de navegación
// relativas al path del listado.
func NewPagedResponse(data interface{}, basePath string, page, perPage, total int) PagedResponse {
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	var next, prev *string
	if page < lastPage {
		u := fmt.Sprintf("%s?page=%d", basePath, page+1)
		next = &u
	}
	if page > 1 {
		u := fmt.Sprintf("%s?page=%d", basePath, page-1)
		prev = &u
	}

	return PagedResponse{
		Data:        data,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
		NextPageURL: next,
		PrevPageURL: prev,
	}
}
