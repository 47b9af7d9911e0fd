package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only de conteos para el dashboard.
// Recibe ctx en cada método: las consultas corren en paralelo desde el
// caso de uso y deben respetar la cancelación del request.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountCompanies cuenta todas las empresas de la plataforma.
func (r *DashboardRepo) CountCompanies(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return n, nil
}

// CountUsers cuenta todos los usuarios de la plataforma.
func (r *DashboardRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountCustomers cuenta clientes; companyID vacío = toda la plataforma.
func (r *DashboardRepo) CountCustomers(ctx context.Context, companyID string) (int, error) {
	return r.scopedCount(ctx, "customers", companyID)
}

// CountProducts cuenta productos; companyID vacío = toda la plataforma.
func (r *DashboardRepo) CountProducts(ctx context.Context, companyID string) (int, error) {
	return r.scopedCount(ctx, "products", companyID)
}

// CountOrders cuenta pedidos; companyID vacío = toda la plataforma.
func (r *DashboardRepo) CountOrders(ctx context.Context, companyID string) (int, error) {
	return r.scopedCount(ctx, "orders", companyID)
}

// CountOrdersByStatus cuenta pedidos en un estado concreto.
func (r *DashboardRepo) CountOrdersByStatus(ctx context.Context, companyID, status string) (int, error) {
	var n int
	if companyID == "" {
		err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("count orders by status: %w", err)
		}
		return n, nil
	}
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE company_id = $1 AND status = $2`,
		companyID, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders by status: %w", err)
	}
	return n, nil
}

// scopedCount cuenta las filas de table, opcionalmente filtradas por empresa.
// table siempre viene de los métodos de arriba, nunca de entrada del usuario.
func (r *DashboardRepo) scopedCount(ctx context.Context, table, companyID string) (int, error) {
	var n int
	if companyID == "" {
		if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return 0, fmt.Errorf("count %s: %w", table, err)
		}
		return n, nil
	}
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+` WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
