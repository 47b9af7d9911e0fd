package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

var _ repository.VariationRepository = (*VariationRepo)(nil)

// VariationRepo implementación de VariationRepository (usable con pool o tx).
type VariationRepo struct {
	q Querier
}

// NewVariationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariationRepository(q Querier) *VariationRepo {
	return &VariationRepo{q: q}
}

const variationColumns = `id, product_id, variant_name, sku, price, stock, specifications, attributes, image, created_at, updated_at`

func scanVariation(row interface{ Scan(dest ...any) error }) (*entity.Variation, error) {
	var v entity.Variation
	err := row.Scan(
		&v.ID, &v.ProductID, &v.VariantName, &v.SKU, &v.Price, &v.Stock,
		&v.Specifications, &v.Attributes, &v.Image, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste una nueva variación.
func (r *VariationRepo) Create(variation *entity.Variation) error {
	query := `
		INSERT INTO product_variations (` + variationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		variation.ID, variation.ProductID, variation.VariantName, variation.SKU,
		variation.Price, variation.Stock, variation.Specifications,
		variation.Attributes, variation.Image, variation.CreatedAt, variation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variation: %w", err)
	}
	return nil
}

// GetByID obtiene una variación por ID.
func (r *VariationRepo) GetByID(id string) (*entity.Variation, error) {
	query := `SELECT ` + variationColumns + ` FROM product_variations WHERE id = $1`
	v, err := scanVariation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variation: %w", err)
	}
	return v, nil
}

// ListByProduct lista las variaciones del producto en orden de creación.
// El orden estable importa: la reconciliación de variaciones depende de él.
func (r *VariationRepo) ListByProduct(productID string) ([]*entity.Variation, error) {
	query := `SELECT ` + variationColumns + ` FROM product_variations WHERE product_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Variation
	for rows.Next() {
		v, err := scanVariation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variation: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update actualiza una variación.
func (r *VariationRepo) Update(variation *entity.Variation) error {
	query := `
		UPDATE product_variations
		SET variant_name = $2, sku = $3, price = $4, stock = $5,
		    specifications = $6, attributes = $7, image = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		variation.ID, variation.VariantName, variation.SKU, variation.Price,
		variation.Stock, variation.Specifications, variation.Attributes,
		variation.Image, variation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update variation: %w", err)
	}
	return nil
}

// Delete elimina una variación por ID.
func (r *VariationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_variations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variation: %w", err)
	}
	return nil
}

// DeleteByProduct elimina todas las variaciones del producto.
func (r *VariationRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_variations WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete variations by product: %w", err)
	}
	return nil
}
