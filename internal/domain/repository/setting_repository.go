package repository

import "github.com/jhoicas/Comercia-api/internal/domain/entity"

// SettingRepository define el puerto de persistencia para Setting (DIP).
// Los settings son globales: no hay scoping por tenant.
type SettingRepository interface {
	Create(setting *entity.Setting) error
	GetByID(id string) (*entity.Setting, error)
	GetByKey(key string) (*entity.Setting, error)
	// List busca por key (substring, case-insensitive). Devuelve la página y el total.
	List(search string, limit, offset int) ([]*entity.Setting, int, error)
	// All devuelve todos los settings sin paginar (endpoint de mapa plano).
	All() ([]*entity.Setting, error)
	Update(setting *entity.Setting) error
	Delete(id string) error
}
