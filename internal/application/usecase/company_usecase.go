package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

const companyImageCategory = "companies"

// CompanyUseCase casos de uso de empresas (gestión de nivel plataforma).
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	userRepo repository.UserRepository
	tx       TenantTxRunner
	images   ImageStore
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, userRepo repository.UserRepository, tx TenantTxRunner, images ImageStore) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, userRepo: userRepo, tx: tx, images: images}
}

// Create valida y persiste una empresa nueva; el logo llega como data URI.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	v := domain.NewValidation()
	if strings.TrimSpace(in.Name) == "" {
		v.AddRequired("name")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		v.Add("email", "email inválido")
	}
	validatePlan(v, in.Plan)
	if err := v.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Website:   in.Website,
		Address:   in.Address,
		City:      in.City,
		Country:   in.Country,
		Plan:      entity.Plan{Status: entity.PlanInactive},
		CreatedAt: now,
		UpdatedAt: now,
	}
	mergePlan(&company.Plan, in.Plan)

	if in.Logo != "" {
		rel, err := uc.images.Save(in.Logo, companyImageCategory)
		if err != nil {
			return nil, err
		}
		company.Logo = &rel
	}

	if err := uc.repo.Create(company); err != nil {
		if company.Logo != nil {
			_ = uc.images.Remove(*company.Logo)
		}
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista empresas con búsqueda, filtro por estado de plan y paginación.
func (uc *CompanyUseCase) List(search, planStatus string, page dto.PageQuery) ([]dto.CompanyResponse, int, error) {
	list, total, err := uc.repo.List(search, planStatus, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return items, total, nil
}

// Update aplica cambios parciales. El plan se mezcla campo a campo: solo los
// campos enviados sobreescriben. Un logo nuevo reemplaza y elimina el
// anterior después de confirmar la fila.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	v := domain.NewValidation()
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		v.Add("name", "el nombre no puede quedar vacío")
	}
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		v.Add("email", "email inválido")
	}
	validatePlan(v, in.Plan)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Website != nil {
		company.Website = *in.Website
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.City != nil {
		company.City = *in.City
	}
	if in.Country != nil {
		company.Country = *in.Country
	}
	mergePlan(&company.Plan, in.Plan)
	company.UpdatedAt = time.Now()

	var staged, obsolete string
	if in.Logo != nil {
		if *in.Logo == "" {
			// Logo vacío: limpiar el actual.
			if company.Logo != nil {
				obsolete = *company.Logo
			}
			company.Logo = nil
		} else {
			rel, err := uc.images.Save(*in.Logo, companyImageCategory)
			if err != nil {
				return nil, err
			}
			staged = rel
			if company.Logo != nil {
				obsolete = *company.Logo
			}
			company.Logo = &rel
		}
	}

	if err := uc.repo.Update(company); err != nil {
		if staged != "" {
			_ = uc.images.Remove(staged)
		}
		return nil, err
	}
	if obsolete != "" {
		_ = uc.images.Remove(obsolete)
	}
	return toCompanyResponse(company), nil
}

// Delete elimina la empresa en cascada: usuarios y perfiles caen en la misma
// transacción; logo y avatares se eliminan del storage tras el commit.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}

	avatars, err := uc.userRepo.ListAvatarsByCompany(id)
	if err != nil {
		return err
	}

	err = uc.tx.RunTenantDelete(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := userRepo.DeleteByCompany(id); err != nil {
			return err
		}
		return companyRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	for _, a := range avatars {
		_ = uc.images.Remove(a)
	}
	if company.Logo != nil {
		_ = uc.images.Remove(*company.Logo)
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func validatePlan(v *domain.ValidationError, in *dto.PlanRequest) {
	if in == nil {
		return
	}
	if in.Status != nil && !entity.ValidPlanStatus(*in.Status) {
		v.Add("plan.status", "status debe ser active, inactive, trial o expired")
	}
	if in.Price != nil && in.Price.IsNegative() {
		v.Add("plan.price", "el precio del plan no puede ser negativo")
	}
	if in.StartsAt != nil && in.ExpiresAt != nil && in.ExpiresAt.Before(*in.StartsAt) {
		v.Add("plan.expires_at", "expires_at debe ser posterior a starts_at")
	}
}

// mergePlan sobreescribe solo los campos enviados; el resto se conserva.
func mergePlan(plan *entity.Plan, in *dto.PlanRequest) {
	if in == nil {
		return
	}
	if in.Name != nil {
		plan.Name = *in.Name
	}
	if in.Price != nil {
		plan.Price = *in.Price
	}
	if in.Status != nil {
		plan.Status = *in.Status
	}
	if in.Features != nil {
		plan.Features = *in.Features
	}
	if in.StartsAt != nil {
		plan.StartsAt = in.StartsAt
	}
	if in.ExpiresAt != nil {
		plan.ExpiresAt = in.ExpiresAt
	}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Website: c.Website,
		Address: c.Address,
		City:    c.City,
		Country: c.Country,
		Logo:    c.Logo,
		Plan: dto.PlanResponse{
			Name:      c.Plan.Name,
			Price:     c.Plan.Price,
			Status:    c.Plan.Status,
			Features:  c.Plan.Features,
			StartsAt:  c.Plan.StartsAt,
			ExpiresAt: c.Plan.ExpiresAt,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
