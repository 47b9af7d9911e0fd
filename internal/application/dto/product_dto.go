package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Type 0 (simple) exige Price presente y no negativo; Type 1 (variable)
// exige al menos una variación y deja Price/Stock de la fila en cero.
type CreateProductRequest struct {
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Type           int                `json:"type"`
	Price          *decimal.Decimal   `json:"price"`
	Stock          *int               `json:"stock"`
	Specifications string             `json:"specifications"`
	Image          string             `json:"image"` // data URI, opcional
	Variations     []VariationRequest `json:"variations"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
// Variations nil significa "no enviadas"; una lista (aun vacía) dispara la
// reconciliación contra las variaciones persistidas.
type UpdateProductRequest struct {
	Name           *string             `json:"name"`
	Description    *string             `json:"description"`
	Type           *int                `json:"type"`
	Price          *decimal.Decimal    `json:"price"`
	Stock          *int                `json:"stock"`
	Specifications *string             `json:"specifications"`
	Image          *string             `json:"image"` // data URI; reemplaza y elimina el anterior
	Variations     *[]VariationRequest `json:"variations"`
}

// VariationRequest una variación enviada en create/update. ID vacío = nueva;
// con ID = update in place de esa fila.
type VariationRequest struct {
	ID             string           `json:"id"`
	VariantName    string           `json:"variant_name"`
	SKU            string           `json:"sku"`
	Price          *decimal.Decimal `json:"price"`
	Stock          int              `json:"stock"`
	Specifications string           `json:"specifications"`
	Attributes     json.RawMessage  `json:"attributes"`
	Image          string           `json:"image"` // data URI; vacío = conservar la actual
}

// VariationResponse salida de una variación.
type VariationResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	VariantName    string          `json:"variant_name"`
	SKU            string          `json:"sku"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Specifications string          `json:"specifications"`
	Attributes     json.RawMessage `json:"attributes"`
	Image          *string         `json:"image"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductResponse salida de un producto con sus variaciones.
type ProductResponse struct {
	ID             string              `json:"id"`
	CompanyID      string              `json:"company_id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Type           int                 `json:"type"`
	Price          decimal.Decimal     `json:"price"`
	Stock          int                 `json:"stock"`
	Specifications string              `json:"specifications"`
	Image          *string             `json:"image"`
	Variations     []VariationResponse `json:"variations"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
