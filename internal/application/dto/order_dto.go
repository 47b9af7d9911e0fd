package dto

import "time"

// AddressRequest bloque de dirección (facturación o entrega).
type AddressRequest struct {
	Line    string `json:"line"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// CreateOrderRequest entrada para crear un pedido. CustomerID y ProductID
// deben pertenecer a la empresa del usuario; si no, se responde como no
// encontrado.
type CreateOrderRequest struct {
	CustomerID      string          `json:"customer_id"`
	ProductID       string          `json:"product_id"`
	ExternalID      *string         `json:"external_id"`
	Status          string          `json:"status"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	InvoiceAddress  AddressRequest  `json:"invoice_address"`
	DeliveryAddress AddressRequest  `json:"delivery_address"`
}

// UpdateOrderRequest entrada para actualizar un pedido (campos opcionales).
type UpdateOrderRequest struct {
	CustomerID      *string         `json:"customer_id"`
	ProductID       *string         `json:"product_id"`
	ExternalID      *string         `json:"external_id"`
	Status          *string         `json:"status"`
	StartDate       *time.Time      `json:"start_date"`
	EndDate         *time.Time      `json:"end_date"`
	InvoiceAddress  *AddressRequest `json:"invoice_address"`
	DeliveryAddress *AddressRequest `json:"delivery_address"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string         `json:"id"`
	CompanyID       string         `json:"company_id"`
	CustomerID      string         `json:"customer_id"`
	ProductID       string         `json:"product_id"`
	ExternalID      *string        `json:"external_id"`
	Status          string         `json:"status"`
	StartDate       time.Time      `json:"start_date"`
	EndDate         time.Time      `json:"end_date"`
	InvoiceAddress  AddressRequest `json:"invoice_address"`
	DeliveryAddress AddressRequest `json:"delivery_address"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
