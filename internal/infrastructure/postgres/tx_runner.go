package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Comercia-api/internal/application/auth"
	"github.com/jhoicas/Comercia-api/internal/application/catalog"
	"github.com/jhoicas/Comercia-api/internal/application/usecase"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// Ensure TxRunner implements catalog.TxRunner and the usecase runners.
var _ catalog.TxRunner = (*TxRunner)(nil)
var _ auth.UserTxRunner = (*TxRunner)(nil)
var _ usecase.UserTxRunner = (*TxRunner)(nil)
var _ usecase.TenantTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCatalog inicia una transacción con repos de producto y variaciones
// atados a la tx, y hace Commit o Rollback según el resultado de fn.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	variationRepo repository.VariationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	variationRepo := NewVariationRepository(tx)

	if err := fn(productRepo, variationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunUserWrite inicia una transacción para una escritura de usuario: las
// filas de users y user_profiles se confirman juntas.
func (r *TxRunner) RunUserWrite(ctx context.Context, fn func(
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTenantDelete inicia una transacción para la cascada de borrado de un
// tenant (usuarios + perfiles + empresa).
func (r *TxRunner) RunTenantDelete(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	companyRepo := NewCompanyRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(companyRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
