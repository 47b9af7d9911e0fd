package repository

import "github.com/jhoicas/Comercia-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. La gestión de empresas es de
// nivel plataforma: no se filtra por tenant.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	// List busca por nombre/email/phone (substring, case-insensitive) y
	// filtra opcionalmente por estado del plan. Devuelve la página y el total.
	List(search, planStatus string, limit, offset int) ([]*entity.Company, int, error)
	Update(company *entity.Company) error
	// Delete elimina solo la fila de la empresa; la cascada (usuarios,
	// perfiles) se orquesta en una transacción vía TxRunner.
	Delete(id string) error
}
