package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes, siempre scoped por empresa.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create valida y persiste un cliente nuevo.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	v := domain.NewValidation()
	if strings.TrimSpace(in.FirstName) == "" {
		v.AddRequired("first_name")
	}
	if strings.TrimSpace(in.LastName) == "" {
		v.AddRequired("last_name")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		v.Add("email", "email inválido")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.ExternalRef != nil && *in.ExternalRef != "" {
		existing, _ := uc.repo.GetByCompanyAndExternalRef(companyID, *in.ExternalRef)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		ExternalRef: in.ExternalRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente de la empresa. Una fila de otro tenant se
// reporta como no encontrada.
func (uc *CustomerUseCase) GetByID(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa con búsqueda y paginación.
func (uc *CustomerUseCase) List(companyID, search string, page dto.PageQuery) ([]dto.CustomerResponse, int, error) {
	list, total, err := uc.repo.ListByCompany(companyID, search, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, total, nil
}

// Update aplica cambios parciales a un cliente.
func (uc *CustomerUseCase) Update(companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	v := domain.NewValidation()
	if in.FirstName != nil && strings.TrimSpace(*in.FirstName) == "" {
		v.Add("first_name", "el nombre no puede quedar vacío")
	}
	if in.Email != nil && *in.Email != "" && !strings.Contains(*in.Email, "@") {
		v.Add("email", "email inválido")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if in.ExternalRef != nil && *in.ExternalRef != "" {
		existing, _ := uc.repo.GetByCompanyAndExternalRef(companyID, *in.ExternalRef)
		if existing != nil && existing.ID != customer.ID {
			return nil, domain.ErrDuplicate
		}
	}

	if in.FirstName != nil {
		customer.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		customer.LastName = *in.LastName
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.City != nil {
		customer.City = *in.City
	}
	if in.Country != nil {
		customer.Country = *in.Country
	}
	if in.ExternalRef != nil {
		customer.ExternalRef = in.ExternalRef
	}
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente de la empresa.
func (uc *CustomerUseCase) Delete(companyID, id string) error {
	customer, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(companyID, id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		Country:     c.Country,
		ExternalRef: c.ExternalRef,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
