package repository

import "github.com/jhoicas/Comercia-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User + Profile (DIP).
// Las lecturas scoped reciben companyID explícito; una fila de otra empresa
// se reporta como no encontrada.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(companyID, id string) (*entity.User, error)
	// FindByEmail es global (login): el email identifica al usuario en toda
	// la plataforma.
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
	// ListByCompany busca por nombre de perfil/email/teléfono y filtra
	// opcionalmente por rol. Devuelve la página y el total.
	ListByCompany(companyID, search, role string, limit, offset int) ([]*entity.User, int, error)
	Update(user *entity.User) error
	Delete(companyID, id string) error
	// ListAvatarsByCompany devuelve las rutas de avatar de los usuarios del
	// tenant; el caller las elimina del storage tras la cascada.
	ListAvatarsByCompany(companyID string) ([]string, error)
	// DeleteByCompany elimina usuarios y perfiles del tenant (cascada).
	DeleteByCompany(companyID string) error
}
