// Package catalog implementa el agregado Producto+Variaciones: creación,
// actualización con reconciliación de variaciones y el ciclo de vida de los
// archivos de imagen asociados.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain"
	domcatalog "github.com/jhoicas/Comercia-api/internal/domain/catalog"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// Categorías de imagen de este agregado (subdirectorios bajo images/).
const (
	productImageCategory   = "products"
	variationImageCategory = "variations"
)

// ProductUseCase escribe el agregado Producto+Variaciones.
//
// Disciplina de archivos en dos fases: las imágenes nuevas se escriben ANTES
// de la transacción (staged); si la transacción falla se eliminan; las
// imágenes reemplazadas o huérfanas se eliminan solo DESPUÉS del commit.
type ProductUseCase struct {
	tx            TxRunner
	productRepo   repository.ProductRepository
	variationRepo repository.VariationRepository
	images        ImageStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	tx TxRunner,
	productRepo repository.ProductRepository,
	variationRepo repository.VariationRepository,
	images ImageStore,
) *ProductUseCase {
	return &ProductUseCase{tx: tx, productRepo: productRepo, variationRepo: variationRepo, images: images}
}

// ── Create ────────────────────────────────────────────────────────────────────

// Create valida y persiste un producto nuevo con sus variaciones en una
// transacción.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           in.Name,
		Description:    in.Description,
		Type:           in.Type,
		Price:          decimal.Zero,
		Specifications: in.Specifications,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Type == entity.ProductSimple {
		product.Price = *in.Price
		if in.Stock != nil {
			product.Stock = *in.Stock
		}
	}

	var staged []string
	if in.Image != "" {
		rel, err := uc.images.Save(in.Image, productImageCategory)
		if err != nil {
			return nil, err
		}
		staged = append(staged, rel)
		product.Image = &rel
	}

	var variations []*entity.Variation
	if product.IsVariable() {
		for _, vreq := range in.Variations {
			v := newVariation(product.ID, vreq, now)
			if vreq.Image != "" {
				rel, err := uc.images.Save(vreq.Image, variationImageCategory)
				if err != nil {
					uc.removeFiles(staged)
					return nil, err
				}
				staged = append(staged, rel)
				v.Image = &rel
			}
			variations = append(variations, v)
		}
	}

	err := uc.tx.RunCatalog(ctx, func(productRepo repository.ProductRepository, variationRepo repository.VariationRepository) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		for _, v := range variations {
			if err := variationRepo.Create(v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.removeFiles(staged)
		return nil, err
	}

	product.Variations = variations
	return toProductResponse(product), nil
}

// ── Update ────────────────────────────────────────────────────────────────────

// Update aplica los cambios de la fila del producto y reconcilia la lista de
// variaciones enviada contra la persistida: con id conocido → update in
// place, sin id → insert, id persistido no tocado → delete (fila + imagen).
// Un id enviado que no pertenece al producto se rechaza con error de
// validación. El cambio variable→simple elimina todas las variaciones.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.variationRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, err
	}

	newType := product.Type
	if in.Type != nil {
		newType = *in.Type
	}
	if err := validateUpdate(product, newType, in, len(existing)); err != nil {
		return nil, err
	}

	now := time.Now()
	applyProductFields(product, in, now)
	product.Type = newType

	// Archivos: staged se escribe ya; obsolete se elimina tras el commit.
	var staged, obsolete []string
	defer func() {
		// staged se vacía al confirmar; si quedó algo es porque abortamos.
		uc.removeFiles(staged)
	}()

	if in.Image != nil && *in.Image != "" {
		rel, err := uc.images.Save(*in.Image, productImageCategory)
		if err != nil {
			return nil, err
		}
		staged = append(staged, rel)
		if product.Image != nil {
			obsolete = append(obsolete, *product.Image)
		}
		product.Image = &rel
	}

	byID := make(map[string]*entity.Variation, len(existing))
	existingIDs := make([]string, 0, len(existing))
	for _, v := range existing {
		byID[v.ID] = v
		existingIDs = append(existingIDs, v.ID)
	}

	var toUpdate, toInsert []*entity.Variation
	var deleteIDs []string
	var result []*entity.Variation

	switch {
	case newType == entity.ProductSimple:
		// Simple: todas las variaciones existentes sobran, con sus imágenes.
		deleteIDs = existingIDs
		for _, v := range existing {
			if v.Image != nil {
				obsolete = append(obsolete, *v.Image)
			}
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.Stock != nil {
			product.Stock = *in.Stock
		}

	case in.Variations != nil:
		submitted := *in.Variations
		entries := make([]domcatalog.Entry, len(submitted))
		for i, s := range submitted {
			entries[i] = domcatalog.Entry{ID: s.ID}
		}
		plan := domcatalog.Reconcile(existingIDs, entries)

		if len(plan.Unknown) > 0 {
			verr := domain.NewValidation()
			for i, s := range submitted {
				for _, unknown := range plan.Unknown {
					if s.ID == unknown {
						verr.Add(fmt.Sprintf("variations.%d.id", i), "la variación no pertenece al producto")
					}
				}
			}
			return nil, verr.Err()
		}

		for _, i := range plan.UpdateIdx {
			req := submitted[i]
			cur := byID[req.ID]
			applyVariationFields(cur, req, now)
			if req.Image != "" {
				rel, err := uc.images.Save(req.Image, variationImageCategory)
				if err != nil {
					return nil, err
				}
				staged = append(staged, rel)
				if cur.Image != nil {
					obsolete = append(obsolete, *cur.Image)
				}
				cur.Image = &rel
			}
			toUpdate = append(toUpdate, cur)
		}
		for _, i := range plan.InsertIdx {
			req := submitted[i]
			v := newVariation(product.ID, req, now)
			if req.Image != "" {
				rel, err := uc.images.Save(req.Image, variationImageCategory)
				if err != nil {
					return nil, err
				}
				staged = append(staged, rel)
				v.Image = &rel
			}
			toInsert = append(toInsert, v)
		}
		deleteIDs = plan.DeleteIDs
		for _, did := range deleteIDs {
			if v := byID[did]; v.Image != nil {
				obsolete = append(obsolete, *v.Image)
			}
		}
		// El producto variable conserva precio/stock en cero en su fila.
		product.Price = decimal.Zero
		product.Stock = 0
		result = append(toUpdate, toInsert...)

	default:
		// Variable sin variaciones enviadas: se conservan las persistidas.
		result = existing
	}

	err = uc.tx.RunCatalog(ctx, func(productRepo repository.ProductRepository, variationRepo repository.VariationRepository) error {
		if err := productRepo.Update(product); err != nil {
			return err
		}
		for _, v := range toUpdate {
			if err := variationRepo.Update(v); err != nil {
				return err
			}
		}
		for _, v := range toInsert {
			if err := variationRepo.Create(v); err != nil {
				return err
			}
		}
		for _, did := range deleteIDs {
			if err := variationRepo.Delete(did); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Commit confirmado: conservar lo escrito y liberar lo reemplazado.
	staged = nil
	uc.removeFiles(obsolete)

	product.Variations = result
	return toProductResponse(product), nil
}

// ── Lecturas y delete ─────────────────────────────────────────────────────────

// GetByID obtiene un producto con sus variaciones, scoped por empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	variations, err := uc.variationRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	product.Variations = variations
	return toProductResponse(product), nil
}

// List lista productos de la empresa con búsqueda, filtro por tipo y paginación.
func (uc *ProductUseCase) List(companyID, search string, productType *int, page dto.PageQuery) ([]dto.ProductResponse, int, error) {
	list, total, err := uc.productRepo.ListByCompany(companyID, search, productType, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if p.IsVariable() {
			variations, err := uc.variationRepo.ListByProduct(p.ID)
			if err != nil {
				return nil, 0, err
			}
			p.Variations = variations
		}
		items = append(items, *toProductResponse(p))
	}
	return items, total, nil
}

// Delete elimina el producto, sus variaciones y todos los archivos de imagen
// asociados. Los archivos se eliminan después del commit.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	product, err := uc.productRepo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	variations, err := uc.variationRepo.ListByProduct(product.ID)
	if err != nil {
		return err
	}

	err = uc.tx.RunCatalog(ctx, func(productRepo repository.ProductRepository, variationRepo repository.VariationRepository) error {
		if err := variationRepo.DeleteByProduct(product.ID); err != nil {
			return err
		}
		return productRepo.Delete(companyID, product.ID)
	})
	if err != nil {
		return err
	}

	var files []string
	for _, v := range variations {
		if v.Image != nil {
			files = append(files, *v.Image)
		}
	}
	if product.Image != nil {
		files = append(files, *product.Image)
	}
	uc.removeFiles(files)
	return nil
}

// ── Validación ────────────────────────────────────────────────────────────────

func validateCreate(in dto.CreateProductRequest) error {
	v := domain.NewValidation()
	if strings.TrimSpace(in.Name) == "" {
		v.AddRequired("name")
	}

	switch in.Type {
	case entity.ProductSimple:
		if in.Price == nil {
			v.Add("price", "un producto simple requiere precio")
		} else if in.Price.IsNegative() {
			v.Add("price", "el precio no puede ser negativo")
		}
		if in.Stock != nil && *in.Stock < 0 {
			v.Add("stock", "el stock no puede ser negativo")
		}
	case entity.ProductVariable:
		if len(in.Variations) == 0 {
			v.Add("variations", "un producto variable requiere al menos una variación")
		}
		validateVariations(v, in.Variations)
	default:
		v.Add("type", "type debe ser 0 (simple) o 1 (variable)")
	}

	return v.Err()
}

func validateUpdate(product *entity.Product, newType int, in dto.UpdateProductRequest, existingCount int) error {
	v := domain.NewValidation()
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		v.Add("name", "el nombre no puede quedar vacío")
	}

	switch newType {
	case entity.ProductSimple:
		// Al pasar de variable a simple el precio debe venir en el request:
		// la fila tenía precio cero.
		if product.IsVariable() && in.Price == nil {
			v.Add("price", "un producto simple requiere precio")
		}
		if in.Price != nil && in.Price.IsNegative() {
			v.Add("price", "el precio no puede ser negativo")
		}
		if in.Stock != nil && *in.Stock < 0 {
			v.Add("stock", "el stock no puede ser negativo")
		}
	case entity.ProductVariable:
		if in.Variations != nil {
			if len(*in.Variations) == 0 {
				v.Add("variations", "un producto variable requiere al menos una variación")
			}
			validateVariations(v, *in.Variations)
		} else if existingCount == 0 {
			v.Add("variations", "un producto variable requiere al menos una variación")
		}
	default:
		v.Add("type", "type debe ser 0 (simple) o 1 (variable)")
	}

	return v.Err()
}

func validateVariations(v *domain.ValidationError, variations []dto.VariationRequest) {
	for i, va := range variations {
		prefix := fmt.Sprintf("variations.%d", i)
		if strings.TrimSpace(va.VariantName) == "" {
			v.AddRequired(prefix + ".variant_name")
		}
		if va.Price == nil {
			v.Add(prefix+".price", "la variación requiere precio")
		} else if va.Price.IsNegative() {
			v.Add(prefix+".price", "el precio no puede ser negativo")
		}
		if va.Stock < 0 {
			v.Add(prefix+".stock", "el stock no puede ser negativo")
		}
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func applyProductFields(p *entity.Product, in dto.UpdateProductRequest, now time.Time) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Specifications != nil {
		p.Specifications = *in.Specifications
	}
	p.UpdatedAt = now
}

func applyVariationFields(v *entity.Variation, req dto.VariationRequest, now time.Time) {
	v.VariantName = req.VariantName
	v.SKU = req.SKU
	v.Price = *req.Price
	v.Stock = req.Stock
	v.Specifications = req.Specifications
	if len(req.Attributes) > 0 {
		v.Attributes = req.Attributes
	}
	v.UpdatedAt = now
}

func newVariation(productID string, req dto.VariationRequest, now time.Time) *entity.Variation {
	return &entity.Variation{
		ID:             uuid.New().String(),
		ProductID:      productID,
		VariantName:    req.VariantName,
		SKU:            req.SKU,
		Price:          *req.Price,
		Stock:          req.Stock,
		Specifications: req.Specifications,
		Attributes:     req.Attributes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// removeFiles elimina archivos ignorando errores individuales: un archivo
// que no se pudo borrar queda huérfano en disco, nunca bloquea la respuesta.
func (uc *ProductUseCase) removeFiles(paths []string) {
	for _, p := range paths {
		_ = uc.images.Remove(p)
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	variations := make([]dto.VariationResponse, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, dto.VariationResponse{
			ID:             v.ID,
			ProductID:      v.ProductID,
			VariantName:    v.VariantName,
			SKU:            v.SKU,
			Price:          v.Price,
			Stock:          v.Stock,
			Specifications: v.Specifications,
			Attributes:     v.Attributes,
			Image:          v.Image,
			CreatedAt:      v.CreatedAt,
			UpdatedAt:      v.UpdatedAt,
		})
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		Name:           p.Name,
		Description:    p.Description,
		Type:           p.Type,
		Price:          p.Price,
		Stock:          p.Stock,
		Specifications: p.Specifications,
		Image:          p.Image,
		Variations:     variations,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
