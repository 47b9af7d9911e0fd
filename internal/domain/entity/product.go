package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto (discriminante).
const (
	ProductSimple   = 0 // precio y stock en la fila del producto
	ProductVariable = 1 // precio y stock por variación
)

// Product representa un producto de la empresa. Un producto simple lleva
// Price/Stock directamente; uno variable los delega en sus Variations y
// mantiene Price/Stock en cero.
type Product struct {
	ID             string
	CompanyID      string
	Name           string
	Description    string
	Type           int // ver constantes Product*
	Price          decimal.Decimal
	Stock          int
	Specifications string
	Image          *string // ruta relativa images/products/<archivo>
	Variations     []*Variation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsVariable indica si el producto delega precio/stock en variaciones.
func (p *Product) IsVariable() bool {
	return p.Type == ProductVariable
}

// Variation es una variante comprable de un producto variable (ej. talla o
// color), con precio, stock e imagen propios.
type Variation struct {
	ID             string
	ProductID      string
	VariantName    string
	SKU            string
	Price          decimal.Decimal
	Stock          int
	Specifications string
	Attributes     json.RawMessage
	Image          *string // ruta relativa images/variations/<archivo>
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
