package repository

import "github.com/jhoicas/Comercia-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(companyID, id string) (*entity.Order, error)
	GetByCompanyAndExternalID(companyID, externalID string) (*entity.Order, error)
	// ListByCompany busca por external_id/status y filtra opcionalmente por
	// status exacto. Devuelve la página y el total.
	ListByCompany(companyID, search, status string, limit, offset int) ([]*entity.Order, int, error)
	Update(order *entity.Order) error
	Delete(companyID, id string) error
}
