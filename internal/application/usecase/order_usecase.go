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

// OrderUseCase casos de uso CRUD de pedidos. Verifica que las referencias a
// cliente y producto pertenezcan a la empresa del usuario: una referencia
// cruzada entre tenants se responde como no encontrada, nunca como error de
// permisos (no filtrar información).
type OrderUseCase struct {
	repo         repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, customerRepo repository.CustomerRepository, productRepo repository.ProductRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo, customerRepo: customerRepo, productRepo: productRepo}
}

// Create valida y persiste un pedido nuevo.
func (uc *OrderUseCase) Create(companyID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	v := domain.NewValidation()
	if strings.TrimSpace(in.CustomerID) == "" {
		v.AddRequired("customer_id")
	}
	if strings.TrimSpace(in.ProductID) == "" {
		v.AddRequired("product_id")
	}
	if in.StartDate.IsZero() {
		v.AddRequired("start_date")
	}
	if in.EndDate.IsZero() {
		v.AddRequired("end_date")
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		v.Add("end_date", "end_date debe ser igual o posterior a start_date")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := uc.checkReferences(companyID, in.CustomerID, in.ProductID); err != nil {
		return nil, err
	}

	if in.ExternalID != nil && *in.ExternalID != "" {
		existing, _ := uc.repo.GetByCompanyAndExternalID(companyID, *in.ExternalID)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	status := in.Status
	if status == "" {
		status = entity.OrderPending
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		CustomerID:      in.CustomerID,
		ProductID:       in.ProductID,
		ExternalID:      in.ExternalID,
		Status:          status,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		InvoiceAddress:  toAddress(in.InvoiceAddress),
		DeliveryAddress: toAddress(in.DeliveryAddress),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene un pedido de la empresa.
func (uc *OrderUseCase) GetByID(companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista pedidos con búsqueda, filtro por status y paginación.
func (uc *OrderUseCase) List(companyID, search, status string, page dto.PageQuery) ([]dto.OrderResponse, int, error) {
	list, total, err := uc.repo.ListByCompany(companyID, search, status, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items, total, nil
}

// Update aplica cambios parciales a un pedido, revalidando fechas y
// referencias si cambian.
func (uc *OrderUseCase) Update(companyID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	start := order.StartDate
	if in.StartDate != nil {
		start = *in.StartDate
	}
	end := order.EndDate
	if in.EndDate != nil {
		end = *in.EndDate
	}
	v := domain.NewValidation()
	if end.Before(start) {
		v.Add("end_date", "end_date debe ser igual o posterior a start_date")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	customerID := order.CustomerID
	if in.CustomerID != nil {
		customerID = *in.CustomerID
	}
	productID := order.ProductID
	if in.ProductID != nil {
		productID = *in.ProductID
	}
	if customerID != order.CustomerID || productID != order.ProductID {
		if err := uc.checkReferences(companyID, customerID, productID); err != nil {
			return nil, err
		}
	}

	if in.ExternalID != nil && *in.ExternalID != "" {
		existing, _ := uc.repo.GetByCompanyAndExternalID(companyID, *in.ExternalID)
		if existing != nil && existing.ID != order.ID {
			return nil, domain.ErrDuplicate
		}
	}

	order.CustomerID = customerID
	order.ProductID = productID
	order.StartDate = start
	order.EndDate = end
	if in.ExternalID != nil {
		order.ExternalID = in.ExternalID
	}
	if in.Status != nil {
		order.Status = *in.Status
	}
	if in.InvoiceAddress != nil {
		order.InvoiceAddress = toAddress(*in.InvoiceAddress)
	}
	if in.DeliveryAddress != nil {
		order.DeliveryAddress = toAddress(*in.DeliveryAddress)
	}
	order.UpdatedAt = time.Now()

	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete elimina un pedido de la empresa.
func (uc *OrderUseCase) Delete(companyID, id string) error {
	order, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(companyID, id)
}

// checkReferences verifica que cliente y producto existan dentro de la
// empresa; si no, ErrNotFound.
func (uc *OrderUseCase) checkReferences(companyID, customerID, productID string) error {
	customer, err := uc.customerRepo.GetByID(companyID, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(companyID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toAddress(in dto.AddressRequest) entity.Address {
	return entity.Address{
		Line:    in.Line,
		City:    in.City,
		ZipCode: in.ZipCode,
		Country: in.Country,
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:         o.ID,
		CompanyID:  o.CompanyID,
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		ExternalID: o.ExternalID,
		Status:     o.Status,
		StartDate:  o.StartDate,
		EndDate:    o.EndDate,
		InvoiceAddress: dto.AddressRequest{
			Line: o.InvoiceAddress.Line, City: o.InvoiceAddress.City,
			ZipCode: o.InvoiceAddress.ZipCode, Country: o.InvoiceAddress.Country,
		},
		DeliveryAddress: dto.AddressRequest{
			Line: o.DeliveryAddress.Line, City: o.DeliveryAddress.City,
			ZipCode: o.DeliveryAddress.ZipCode, Country: o.DeliveryAddress.Country,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
