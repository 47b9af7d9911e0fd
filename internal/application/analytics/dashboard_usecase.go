// Package analytics contiene los casos de uso de agregación para el
// dashboard: conteos globales de plataforma y conteos por empresa.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// DashboardUseCase genera los resúmenes de conteos del dashboard.
//
// Fuente de datos: DashboardRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo}
}

type countResult struct {
	n   int
	err error
}

// AdminSummary construye los conteos globales de la plataforma.
//
// Cinco llamadas en paralelo: empresas, usuarios, clientes, productos y
// pedidos, todas sin filtro de empresa.
func (uc *DashboardUseCase) AdminSummary(ctx context.Context) (*dto.AdminSummaryDTO, error) {
	companiesCh := make(chan countResult, 1)
	usersCh := make(chan countResult, 1)
	customersCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)
	ordersCh := make(chan countResult, 1)

	go func() {
		n, err := uc.dashboardRepo.CountCompanies(ctx)
		companiesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountUsers(ctx)
		usersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountCustomers(ctx, "")
		customersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountProducts(ctx, "")
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountOrders(ctx, "")
		ordersCh <- countResult{n, err}
	}()

	companies := <-companiesCh
	users := <-usersCh
	customers := <-customersCh
	products := <-productsCh
	orders := <-ordersCh

	if companies.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de empresas: %w", companies.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de usuarios: %w", users.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de clientes: %w", customers.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", products.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de pedidos: %w", orders.err)
	}

	return &dto.AdminSummaryDTO{
		TotalCompanies: companies.n,
		TotalUsers:     users.n,
		TotalCustomers: customers.n,
		TotalProducts:  products.n,
		TotalOrders:    orders.n,
	}, nil
}

// CompanySummary construye los conteos del tenant indicado.
//
// Cuatro llamadas en paralelo: clientes, productos, pedidos totales y
// pedidos pendientes, todas filtradas por companyID.
func (uc *DashboardUseCase) CompanySummary(ctx context.Context, companyID string) (*dto.CompanySummaryDTO, error) {
	customersCh := make(chan countResult, 1)
	productsCh := make(chan countResult, 1)
	ordersCh := make(chan countResult, 1)
	pendingCh := make(chan countResult, 1)

	go func() {
		n, err := uc.dashboardRepo.CountCustomers(ctx, companyID)
		customersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountProducts(ctx, companyID)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountOrders(ctx, companyID)
		ordersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountOrdersByStatus(ctx, companyID, entity.OrderPending)
		pendingCh <- countResult{n, err}
	}()

	customers := <-customersCh
	products := <-productsCh
	orders := <-ordersCh
	pending := <-pendingCh

	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de clientes: %w", customers.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", products.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de pedidos: %w", orders.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de pedidos pendientes: %w", pending.err)
	}

	return &dto.CompanySummaryDTO{
		Customers:     customers.n,
		Products:      products.n,
		Orders:        orders.n,
		PendingOrders: pending.n,
	}, nil
}
