// Package documents genera documentos descargables a partir de los datos
// del negocio (resumen de pedido en PDF).
package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// OrderPDFGenerator abstrae el motor de render del PDF de pedido.
// La implementación concreta vive en infrastructure/pdf.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, company *entity.Company, customer *entity.Customer, product *entity.Product) ([]byte, error)
}

// OrderPDFUseCase genera la representación gráfica (PDF) de un pedido.
type OrderPDFUseCase struct {
	orderRepo    repository.OrderRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    OrderPDFGenerator
}

// NewOrderPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewOrderPDFUseCase(
	orderRepo repository.OrderRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator OrderPDFGenerator,
) *OrderPDFUseCase {
	return &OrderPDFUseCase{
		orderRepo:    orderRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadOrderPDF carga el pedido dentro de la empresa del token, resuelve
// empresa, cliente y producto asociados y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el pedido, la empresa o sus referencias
//     no existen dentro del tenant.
func (uc *OrderPDFUseCase) DownloadOrderPDF(
	ctx context.Context,
	companyID, orderID string,
) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(companyID, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customerRepo.GetByID(companyID, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	product, err := uc.productRepo.GetByID(companyID, order.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateOrderPDF(ctx, order, company, customer, product)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("pedido_%s.pdf", order.ID)
	return pdfBytes, filename, nil
}
