package repository

import "context"

// DashboardRepository consultas read-only de conteos para el dashboard.
// companyID vacío significa conteo global (vista de plataforma).
type DashboardRepository interface {
	CountCompanies(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
	CountCustomers(ctx context.Context, companyID string) (int, error)
	CountProducts(ctx context.Context, companyID string) (int, error)
	CountOrders(ctx context.Context, companyID string) (int, error)
	CountOrdersByStatus(ctx context.Context, companyID, status string) (int, error)
}
