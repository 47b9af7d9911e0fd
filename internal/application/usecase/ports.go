package usecase

import (
	"context"

	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// ImageStore puerto mínimo del almacenamiento de imágenes (logos y
// avatares); lo implementa storage.ImageStore.
type ImageStore interface {
	Save(dataURI, category string) (string, error)
	Remove(relPath string) error
}

// UserTxRunner ejecuta una escritura de usuario + perfil dentro de una
// transacción: las dos tablas se confirman o revierten juntas.
type UserTxRunner interface {
	RunUserWrite(ctx context.Context, fn func(
		userRepo repository.UserRepository,
	) error) error
}

// TenantTxRunner ejecuta la cascada de borrado de un tenant (usuarios,
// perfiles y la empresa) dentro de una transacción.
type TenantTxRunner interface {
	RunTenantDelete(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}
