package catalog

import (
	"context"

	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// ImageStore puerto mínimo del almacenamiento de imágenes que necesita el
// caso de uso; lo implementa storage.ImageStore.
type ImageStore interface {
	Save(dataURI, category string) (string, error)
	Remove(relPath string) error
}

// TxRunner ejecuta el callback con repos atados a una transacción: todas
// las mutaciones de filas de un create/update/delete de producto comparten
// una sola transacción.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		variationRepo repository.VariationRepository,
	) error) error
}
