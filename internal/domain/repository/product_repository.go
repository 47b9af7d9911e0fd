package repository

import "github.com/jhoicas/Comercia-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// No carga variaciones: eso es responsabilidad de VariationRepository.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(companyID, id string) (*entity.Product, error)
	// ListByCompany busca por name/specifications y filtra opcionalmente por
	// tipo (0 simple, 1 variable). Devuelve la página y el total.
	ListByCompany(companyID, search string, productType *int, limit, offset int) ([]*entity.Product, int, error)
	Update(product *entity.Product) error
	Delete(companyID, id string) error
}

// VariationRepository define el puerto de persistencia para Variation (DIP).
// El scoping por tenant llega implícito: toda operación parte de un
// ProductID ya verificado contra la empresa.
type VariationRepository interface {
	Create(variation *entity.Variation) error
	GetByID(id string) (*entity.Variation, error)
	ListByProduct(productID string) ([]*entity.Variation, error)
	Update(variation *entity.Variation) error
	Delete(id string) error
	DeleteByProduct(productID string) error
}
