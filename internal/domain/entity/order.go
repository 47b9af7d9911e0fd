package entity

import "time"

// Estados de pedido usados por la UI. OrderStatus es texto libre en DB;
// estas constantes son la convención del dashboard.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Order representa un pedido: referencia un Customer y un Product de la
// misma empresa (las referencias cruzadas entre tenants se rechazan).
type Order struct {
	ID              string
	CompanyID       string
	CustomerID      string
	ProductID       string
	ExternalID      *string // id de pedido externo, único por empresa cuando existe
	Status          string
	StartDate       time.Time
	EndDate         time.Time // invariante: EndDate >= StartDate
	InvoiceAddress  Address
	DeliveryAddress Address
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Address bloque de dirección de facturación o entrega.
type Address struct {
	Line    string `json:"line"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}
