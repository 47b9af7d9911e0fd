package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Las direcciones de facturación y entrega se persisten como columnas JSONB.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, company_id, customer_id, product_id, external_id, status, start_date, end_date, invoice_address, delivery_address, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.CustomerID, &o.ProductID, &o.ExternalID,
		&o.Status, &o.StartDate, &o.EndDate, &o.InvoiceAddress, &o.DeliveryAddress,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.CustomerID, order.ProductID,
		order.ExternalID, order.Status, order.StartDate, order.EndDate,
		order.InvoiceAddress, order.DeliveryAddress, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido de la empresa por ID.
func (r *OrderRepo) GetByID(companyID, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE company_id = $1 AND id = $2`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetByCompanyAndExternalID obtiene un pedido por id externo.
func (r *OrderRepo) GetByCompanyAndExternalID(companyID, externalID string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE company_id = $1 AND external_id = $2`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, companyID, externalID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by external_id: %w", err)
	}
	return o, nil
}

// ListByCompany lista pedidos de la empresa con búsqueda por external_id o
// status, filtro opcional por status exacto y paginación.
func (r *OrderRepo) ListByCompany(companyID, search, status string, limit, offset int) ([]*entity.Order, int, error) {
	ctx := context.Background()
	where := ` WHERE company_id = $1`
	args := []any{companyID}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (external_id ILIKE $%d OR status ILIKE $%d)`, n, n)
	}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// Update actualiza un pedido.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders
		SET customer_id = $2, product_id = $3, external_id = $4, status = $5,
		    start_date = $6, end_date = $7, invoice_address = $8,
		    delivery_address = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.ProductID, order.ExternalID,
		order.Status, order.StartDate, order.EndDate, order.InvoiceAddress,
		order.DeliveryAddress, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete elimina un pedido de la empresa por ID.
func (r *OrderRepo) Delete(companyID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM orders WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
