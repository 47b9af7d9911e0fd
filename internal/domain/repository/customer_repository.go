package repository

import "github.com/jhoicas/Comercia-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(companyID, id string) (*entity.Customer, error)
	GetByCompanyAndExternalRef(companyID, externalRef string) (*entity.Customer, error)
	// ListByCompany busca por first_name/last_name/email/phone (substring,
	// case-insensitive, OR). Devuelve la página y el total.
	ListByCompany(companyID, search string, limit, offset int) ([]*entity.Customer, int, error)
	Update(customer *entity.Customer) error
	Delete(companyID, id string) error
}
