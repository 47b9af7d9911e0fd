package catalog_test

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercia-api/internal/application/catalog"
	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
	"github.com/jhoicas/Comercia-api/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
	failOn   string // nombre del método que debe fallar
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	if r.failOn == "Create" {
		return errors.New("insert product: fallo simulado")
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListByCompany(companyID, search string, productType *int, limit, offset int) ([]*entity.Product, int, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, len(list), nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if r.failOn == "Update" {
		return errors.New("update product: fallo simulado")
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(companyID, id string) error {
	delete(r.products, id)
	return nil
}

type fakeVariationRepo struct {
	variations map[string]*entity.Variation
	order      []string // orden de inserción, emula ORDER BY created_at
}

func newFakeVariationRepo() *fakeVariationRepo {
	return &fakeVariationRepo{variations: map[string]*entity.Variation{}}
}

func (r *fakeVariationRepo) Create(v *entity.Variation) error {
	cp := *v
	r.variations[v.ID] = &cp
	r.order = append(r.order, v.ID)
	return nil
}

func (r *fakeVariationRepo) GetByID(id string) (*entity.Variation, error) {
	v, ok := r.variations[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVariationRepo) ListByProduct(productID string) ([]*entity.Variation, error) {
	var list []*entity.Variation
	for _, id := range r.order {
		v, ok := r.variations[id]
		if ok && v.ProductID == productID {
			cp := *v
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeVariationRepo) Update(v *entity.Variation) error {
	cp := *v
	r.variations[v.ID] = &cp
	return nil
}

func (r *fakeVariationRepo) Delete(id string) error {
	delete(r.variations, id)
	return nil
}

func (r *fakeVariationRepo) DeleteByProduct(productID string) error {
	for id, v := range r.variations {
		if v.ProductID == productID {
			delete(r.variations, id)
		}
	}
	return nil
}

// fakeTxRunner ejecuta el callback con los mismos repos en memoria. No hay
// rollback real: los tests de fallo usan failOn en los repos para abortar
// antes de mutar estado relevante.
type fakeTxRunner struct {
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
}

func (r *fakeTxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	variationRepo repository.VariationRepository,
) error) error {
	return fn(r.productRepo, r.variationRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "00000000-0000-0000-0000-00000000000a"

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

// pngDataURI genera un data URI de imagen válido para los tests.
func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

type fixture struct {
	uc            *catalog.ProductUseCase
	productRepo   *fakeProductRepo
	variationRepo *fakeVariationRepo
	publicDir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	productRepo := newFakeProductRepo()
	variationRepo := newFakeVariationRepo()
	tx := &fakeTxRunner{productRepo: productRepo, variationRepo: variationRepo}
	publicDir := t.TempDir()
	images := storage.NewImageStore(publicDir)
	return &fixture{
		uc:            catalog.NewProductUseCase(tx, productRepo, variationRepo, images),
		productRepo:   productRepo,
		variationRepo: variationRepo,
		publicDir:     publicDir,
	}
}

// fileExists verifica si la ruta relativa devuelta por el use case existe en disco.
func (f *fixture) fileExists(rel string) bool {
	_, err := os.Stat(filepath.Join(f.publicDir, rel))
	return err == nil
}

// countFiles cuenta los archivos bajo images/ del directorio público.
func (f *fixture) countFiles(t *testing.T) int {
	t.Helper()
	n := 0
	_ = filepath.Walk(filepath.Join(f.publicDir, "images"), func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return nil
	})
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ProductoSimple(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Name:  "Camiseta básica",
		Type:  entity.ProductSimple,
		Price: dec("9.99"),
		Stock: intPtr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProductSimple, out.Type)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("9.99")), "precio debe persistirse tal cual")
	assert.Equal(t, 5, out.Stock)
	assert.Empty(t, out.Variations)

	persisted, _ := f.productRepo.GetByID(testCompanyID, out.ID)
	require.NotNil(t, persisted, "el producto debe quedar persistido")
}

func TestCreate_ProductoSimpleSinPrecio_Rechazado(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Name: "Sin precio",
		Type: entity.ProductSimple,
	})
	require.Error(t, err)

	verr, ok := domain.AsValidation(err)
	require.True(t, ok, "debe ser error de validación")
	assert.Contains(t, verr.Fields, "price")
}

func TestCreate_ProductoVariable_ConVariacionesEImagenes(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Name: "Camiseta estampada",
		Type: entity.ProductVariable,
		Variations: []dto.VariationRequest{
			{VariantName: "Talla S", SKU: "CAM-S", Price: dec("12.50"), Stock: 3, Image: pngDataURI()},
			{VariantName: "Talla M", SKU: "CAM-M", Price: dec("12.50"), Stock: 7},
		},
	})
	require.NoError(t, err)

	require.Len(t, out.Variations, 2)
	assert.True(t, out.Price.IsZero(), "la fila del producto variable mantiene precio cero")
	require.NotNil(t, out.Variations[0].Image)
	assert.True(t, f.fileExists(*out.Variations[0].Image), "la imagen de la variación debe existir en disco")
	assert.Nil(t, out.Variations[1].Image)
}

func TestCreate_VariableSinVariaciones_Rechazado(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Name: "Variable vacío",
		Type: entity.ProductVariable,
	})
	require.Error(t, err)

	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "variations")
}

func TestCreate_TransaccionFalla_EliminaArchivosEscritos(t *testing.T) {
	f := newFixture(t)
	f.productRepo.failOn = "Create"

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Name:  "Con imagen",
		Type:  entity.ProductSimple,
		Price: dec("5.00"),
		Image: pngDataURI(),
	})
	require.Error(t, err)

	assert.Equal(t, 0, f.countFiles(t), "al abortar la transacción no debe quedar ningún archivo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update — reconciliación de variaciones
// ──────────────────────────────────────────────────────────────────────────────

// seedVariable crea un producto variable con las variaciones indicadas, cada
// una con imagen en disco, y devuelve el producto y las rutas de imagen.
func seedVariable(t *testing.T, f *fixture, names ...string) (*dto.ProductResponse, []string) {
	t.Helper()
	reqs := make([]dto.VariationRequest, len(names))
	for i, n := range names {
		reqs[i] = dto.VariationRequest{VariantName: n, SKU: "SKU-" + n, Price: dec("10.00"), Stock: 1, Image: pngDataURI()}
	}
	out, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Name:       "Producto variable",
		Type:       entity.ProductVariable,
		Variations: reqs,
	})
	require.NoError(t, err)

	images := make([]string, len(out.Variations))
	for i, v := range out.Variations {
		require.NotNil(t, v.Image)
		images[i] = *v.Image
	}
	return out, images
}

func TestUpdate_ReconciliaVariaciones(t *testing.T) {
	f := newFixture(t)
	product, images := seedVariable(t, f, "A", "B", "C")
	idA := product.Variations[0].ID

	// Enviar [A modificada, D nueva]: A se actualiza, D se inserta, B y C se
	// eliminan junto con sus imágenes.
	out, err := f.uc.Update(context.Background(), testCompanyID, product.ID, dto.UpdateProductRequest{
		Variations: &[]dto.VariationRequest{
			{ID: idA, VariantName: "A bis", SKU: "SKU-A", Price: dec("15.00"), Stock: 9},
			{VariantName: "D", SKU: "SKU-D", Price: dec("20.00"), Stock: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Variations, 2)

	assert.Equal(t, idA, out.Variations[0].ID, "A conserva su id")
	assert.Equal(t, "A bis", out.Variations[0].VariantName)
	assert.True(t, out.Variations[0].Price.Equal(decimal.RequireFromString("15.00")))
	assert.NotEmpty(t, out.Variations[1].ID, "D recibe id nuevo")

	persisted, _ := f.variationRepo.ListByProduct(product.ID)
	assert.Len(t, persisted, 2, "solo A y D deben quedar persistidas")

	assert.True(t, f.fileExists(images[0]), "la imagen de A se conserva: no se envió reemplazo")
	assert.False(t, f.fileExists(images[1]), "la imagen de B debe eliminarse")
	assert.False(t, f.fileExists(images[2]), "la imagen de C debe eliminarse")
}

func TestUpdate_VariacionDesconocida_Rechazada(t *testing.T) {
	f := newFixture(t)
	product, _ := seedVariable(t, f, "A")

	_, err := f.uc.Update(context.Background(), testCompanyID, product.ID, dto.UpdateProductRequest{
		Variations: &[]dto.VariationRequest{
			{ID: "id-que-no-existe", VariantName: "X", Price: dec("1.00")},
		},
	})
	require.Error(t, err)

	verr, ok := domain.AsValidation(err)
	require.True(t, ok, "id desconocido debe rechazarse como error de validación")
	assert.Contains(t, verr.Fields, "variations.0.id")

	persisted, _ := f.variationRepo.ListByProduct(product.ID)
	assert.Len(t, persisted, 1, "nada debe mutarse al rechazar")
}

func TestUpdate_VariableASimple_EliminaVariaciones(t *testing.T) {
	f := newFixture(t)
	product, images := seedVariable(t, f, "A", "B")

	out, err := f.uc.Update(context.Background(), testCompanyID, product.ID, dto.UpdateProductRequest{
		Type:  intPtr(entity.ProductSimple),
		Price: dec("30.00"),
		Stock: intPtr(4),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProductSimple, out.Type)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 4, out.Stock)
	assert.Empty(t, out.Variations)

	persisted, _ := f.variationRepo.ListByProduct(product.ID)
	assert.Empty(t, persisted, "las variaciones deben eliminarse al volverse simple")
	for _, img := range images {
		assert.False(t, f.fileExists(img), "las imágenes de las variaciones deben eliminarse")
	}
}

func TestUpdate_VariableASimpleSinPrecio_Rechazado(t *testing.T) {
	f := newFixture(t)
	product, _ := seedVariable(t, f, "A")

	_, err := f.uc.Update(context.Background(), testCompanyID, product.ID, dto.UpdateProductRequest{
		Type: intPtr(entity.ProductSimple),
	})
	require.Error(t, err)

	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "price", "la fila tenía precio cero: el precio debe venir en el request")
}

func TestUpdate_SimpleAVariable(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Name:  "Simple",
		Type:  entity.ProductSimple,
		Price: dec("8.00"),
	})
	require.NoError(t, err)

	out, err := f.uc.Update(context.Background(), testCompanyID, created.ID, dto.UpdateProductRequest{
		Type: intPtr(entity.ProductVariable),
		Variations: &[]dto.VariationRequest{
			{VariantName: "Única", SKU: "UNI", Price: dec("8.50"), Stock: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProductVariable, out.Type)
	assert.True(t, out.Price.IsZero(), "al volverse variable la fila pasa a precio cero")
	require.Len(t, out.Variations, 1)
}

func TestUpdate_SinVariacionesEnviadas_LasConserva(t *testing.T) {
	f := newFixture(t)
	product, _ := seedVariable(t, f, "A", "B")

	out, err := f.uc.Update(context.Background(), testCompanyID, product.ID, dto.UpdateProductRequest{
		Name: strPtr("Renombrado"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renombrado", out.Name)
	assert.Len(t, out.Variations, 2, "variations ausente no toca las persistidas")
}

func TestUpdate_ReemplazaImagenDelProducto(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateProductRequest{
		Name:  "Con imagen",
		Type:  entity.ProductSimple,
		Price: dec("5.00"),
		Image: pngDataURI(),
	})
	require.NoError(t, err)
	oldImage := *created.Image

	out, err := f.uc.Update(context.Background(), testCompanyID, created.ID, dto.UpdateProductRequest{
		Image: strPtr(pngDataURI()),
	})
	require.NoError(t, err)

	require.NotNil(t, out.Image)
	assert.NotEqual(t, oldImage, *out.Image, "debe escribirse un archivo nuevo")
	assert.True(t, f.fileExists(*out.Image))
	assert.False(t, f.fileExists(oldImage), "la imagen reemplazada se elimina tras el commit")
}

func TestUpdate_ProductoInexistente_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Update(context.Background(), testCompanyID, "no-existe", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_OtraEmpresa_NotFound(t *testing.T) {
	f := newFixture(t)
	product, _ := seedVariable(t, f, "A")

	_, err := f.uc.Update(context.Background(), "otra-empresa", product.ID, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un producto de otra empresa se reporta como no encontrado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_EliminaFilasYArchivos(t *testing.T) {
	f := newFixture(t)
	product, images := seedVariable(t, f, "A", "B")

	require.NoError(t, f.uc.Delete(context.Background(), testCompanyID, product.ID))

	persisted, _ := f.productRepo.GetByID(testCompanyID, product.ID)
	assert.Nil(t, persisted)
	variations, _ := f.variationRepo.ListByProduct(product.ID)
	assert.Empty(t, variations)
	for _, img := range images {
		assert.False(t, f.fileExists(img))
	}
}

func TestDelete_ProductoInexistente_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.uc.Delete(context.Background(), testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
