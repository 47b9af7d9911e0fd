package dto

// AdminSummaryDTO conteos globales de la plataforma.
type AdminSummaryDTO struct {
	TotalCompanies int `json:"total_companies"`
	TotalUsers     int `json:"total_users"`
	TotalCustomers int `json:"total_customers"`
	TotalProducts  int `json:"total_products"`
	TotalOrders    int `json:"total_orders"`
}

// CompanySummaryDTO conteos del tenant del usuario autenticado.
type CompanySummaryDTO struct {
	Customers     int `json:"customers"`
	Products      int `json:"products"`
	Orders        int `json:"orders"`
	PendingOrders int `json:"pending_orders"`
}
