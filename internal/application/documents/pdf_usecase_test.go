package documents_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercia-api/internal/application/documents"
	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct{ order *entity.Order }

func (r *fakeOrderRepo) Create(*entity.Order) error { return nil }

func (r *fakeOrderRepo) GetByID(companyID, id string) (*entity.Order, error) {
	if r.order != nil && r.order.CompanyID == companyID && r.order.ID == id {
		return r.order, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByCompanyAndExternalID(companyID, externalID string) (*entity.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) ListByCompany(companyID, search, status string, limit, offset int) ([]*entity.Order, int, error) {
	return nil, 0, nil
}

func (r *fakeOrderRepo) Update(*entity.Order) error        { return nil }
func (r *fakeOrderRepo) Delete(companyID, id string) error { return nil }

type fakeCompanyRepo struct{ company *entity.Company }

func (r *fakeCompanyRepo) Create(*entity.Company) error { return nil }

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if r.company != nil && r.company.ID == id {
		return r.company, nil
	}
	return nil, nil
}

func (r *fakeCompanyRepo) List(search, planStatus string, limit, offset int) ([]*entity.Company, int, error) {
	return nil, 0, nil
}

func (r *fakeCompanyRepo) Update(*entity.Company) error { return nil }
func (r *fakeCompanyRepo) Delete(id string) error       { return nil }

type fakeCustomerRepo struct{ customer *entity.Customer }

func (r *fakeCustomerRepo) Create(*entity.Customer) error { return nil }

func (r *fakeCustomerRepo) GetByID(companyID, id string) (*entity.Customer, error) {
	if r.customer != nil && r.customer.CompanyID == companyID && r.customer.ID == id {
		return r.customer, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByCompanyAndExternalRef(companyID, externalRef string) (*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) ListByCompany(companyID, search string, limit, offset int) ([]*entity.Customer, int, error) {
	return nil, 0, nil
}

func (r *fakeCustomerRepo) Update(*entity.Customer) error     { return nil }
func (r *fakeCustomerRepo) Delete(companyID, id string) error { return nil }

type fakeProductRepo struct{ product *entity.Product }

func (r *fakeProductRepo) Create(*entity.Product) error { return nil }

func (r *fakeProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	if r.product != nil && r.product.CompanyID == companyID && r.product.ID == id {
		return r.product, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) ListByCompany(companyID, search string, productType *int, limit, offset int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Update(*entity.Product) error      { return nil }
func (r *fakeProductRepo) Delete(companyID, id string) error { return nil }

type fakeGenerator struct{ out []byte }

func (g *fakeGenerator) GenerateOrderPDF(ctx context.Context, order *entity.Order, company *entity.Company, customer *entity.Customer, product *entity.Product) ([]byte, error) {
	return g.out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "empresa-1"

func newFixture(withCustomer, withProduct bool) *documents.OrderPDFUseCase {
	order := &entity.Order{ID: "pedido-1", CompanyID: testCompanyID, CustomerID: "cliente-1", ProductID: "producto-1"}
	company := &entity.Company{ID: testCompanyID, Name: "Comercia SL"}

	customers := &fakeCustomerRepo{}
	if withCustomer {
		customers.customer = &entity.Customer{ID: "cliente-1", CompanyID: testCompanyID, FirstName: "Ana"}
	}
	products := &fakeProductRepo{}
	if withProduct {
		products.product = &entity.Product{ID: "producto-1", CompanyID: testCompanyID, Name: "Alquiler"}
	}

	return documents.NewOrderPDFUseCase(
		&fakeOrderRepo{order: order},
		&fakeCompanyRepo{company: company},
		customers,
		products,
		&fakeGenerator{out: []byte("%PDF-fake")},
	)
}

func TestDownloadOrderPDF_OK(t *testing.T) {
	uc := newFixture(true, true)

	pdf, filename, err := uc.DownloadOrderPDF(context.Background(), testCompanyID, "pedido-1")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "pedido_pedido-1.pdf", filename)
}

func TestDownloadOrderPDF_PedidoInexistente_NotFound(t *testing.T) {
	uc := newFixture(true, true)

	_, _, err := uc.DownloadOrderPDF(context.Background(), testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadOrderPDF_PedidoDeOtraEmpresa_NotFound(t *testing.T) {
	uc := newFixture(true, true)

	_, _, err := uc.DownloadOrderPDF(context.Background(), "otra-empresa", "pedido-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadOrderPDF_ClienteAusente_NotFound(t *testing.T) {
	uc := newFixture(false, true)

	// La referencia rota se reporta como no encontrada, nunca como error
	// interno.
	_, _, err := uc.DownloadOrderPDF(context.Background(), testCompanyID, "pedido-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadOrderPDF_ProductoAusente_NotFound(t *testing.T) {
	uc := newFixture(true, false)

	_, _, err := uc.DownloadOrderPDF(context.Background(), testCompanyID, "pedido-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
