package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

const profileImageCategory = "profiles"

// UserUseCase casos de uso CRUD de usuarios de empresa con su perfil 1:1.
// Toda mutación pasa por el tx runner: las filas de usuario y perfil se
// confirman o revierten juntas.
type UserUseCase struct {
	tx     UserTxRunner
	repo   repository.UserRepository
	images ImageStore
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(tx UserTxRunner, repo repository.UserRepository, images ImageStore) *UserUseCase {
	return &UserUseCase{tx: tx, repo: repo, images: images}
}

// Create da de alta un usuario en la empresa indicada. El avatar llega como
// data URI y se escribe antes del insert; si la transacción falla se elimina.
func (uc *UserUseCase) Create(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	v := domain.NewValidation()
	if strings.TrimSpace(in.Email) == "" {
		v.AddRequired("email")
	} else if !strings.Contains(in.Email, "@") {
		v.Add("email", "email inválido")
	}
	if len(in.Password) < 8 {
		v.Add("password", "password debe tener al menos 8 caracteres")
	}
	if strings.TrimSpace(in.Name) == "" {
		v.AddRequired("name")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCompany
	}
	if !entity.ValidRole(role) {
		v.Add("role", "role debe ser platform o company")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing, _ := uc.repo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "active",
		Profile: entity.Profile{
			Name:  in.Name,
			Phone: in.Phone,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.Avatar != "" {
		rel, err := uc.images.Save(in.Avatar, profileImageCategory)
		if err != nil {
			return nil, err
		}
		user.Profile.Avatar = &rel
	}

	err = uc.tx.RunUserWrite(ctx, func(userRepo repository.UserRepository) error {
		return userRepo.Create(user)
	})
	if err != nil {
		if user.Profile.Avatar != nil {
			_ = uc.images.Remove(*user.Profile.Avatar)
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario de la empresa por ID.
func (uc *UserUseCase) GetByID(companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// List lista usuarios de la empresa con búsqueda, filtro por rol y paginación.
func (uc *UserUseCase) List(companyID, search, role string, page dto.PageQuery) ([]dto.UserResponse, int, error) {
	list, total, err := uc.repo.ListByCompany(companyID, search, role, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, total, nil
}

// Update aplica cambios parciales a usuario y perfil. Un avatar nuevo
// reemplaza y elimina el anterior tras confirmar las filas.
func (uc *UserUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	v := domain.NewValidation()
	if in.Email != nil && !strings.Contains(*in.Email, "@") {
		v.Add("email", "email inválido")
	}
	if in.Password != nil && len(*in.Password) < 8 {
		v.Add("password", "password debe tener al menos 8 caracteres")
	}
	if in.Role != nil && !entity.ValidRole(*in.Role) {
		v.Add("role", "role debe ser platform o company")
	}
	if in.Status != nil && *in.Status != "active" && *in.Status != "inactive" {
		v.Add("status", "status debe ser active o inactive")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		existing, _ := uc.repo.FindByEmail(*in.Email)
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	if in.Name != nil {
		user.Profile.Name = *in.Name
	}
	if in.Phone != nil {
		user.Profile.Phone = *in.Phone
	}
	user.UpdatedAt = time.Now()

	var staged, obsolete string
	if in.Avatar != nil {
		if *in.Avatar == "" {
			if user.Profile.Avatar != nil {
				obsolete = *user.Profile.Avatar
			}
			user.Profile.Avatar = nil
		} else {
			rel, err := uc.images.Save(*in.Avatar, profileImageCategory)
			if err != nil {
				return nil, err
			}
			staged = rel
			if user.Profile.Avatar != nil {
				obsolete = *user.Profile.Avatar
			}
			user.Profile.Avatar = &rel
		}
	}

	err = uc.tx.RunUserWrite(ctx, func(userRepo repository.UserRepository) error {
		return userRepo.Update(user)
	})
	if err != nil {
		if staged != "" {
			_ = uc.images.Remove(staged)
		}
		return nil, err
	}
	if obsolete != "" {
		_ = uc.images.Remove(obsolete)
	}
	return toUserResponse(user), nil
}

// Delete elimina el usuario y su avatar del storage.
func (uc *UserUseCase) Delete(ctx context.Context, companyID, id string) error {
	user, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	err = uc.tx.RunUserWrite(ctx, func(userRepo repository.UserRepository) error {
		return userRepo.Delete(companyID, id)
	})
	if err != nil {
		return err
	}
	if user.Profile.Avatar != nil {
		_ = uc.images.Remove(*user.Profile.Avatar)
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		Profile: dto.ProfileResponse{
			Name:   u.Profile.Name,
			Phone:  u.Profile.Phone,
			Avatar: u.Profile.Avatar,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
