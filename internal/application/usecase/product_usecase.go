package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/pricing"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/Orcamentos-api/pkg/slug"
	"github.com/jhoicas/Orcamentos-api/pkg/validation"
)

// ProductUseCase casos de uso del catálogo: productos y sus tramos de precio.
type ProductUseCase struct {
	tx         ports.TxRunner
	products   repository.ProductRepository
	tiers      repository.PriceTierRepository
	images     repository.ProductImageRepository
	categories repository.CategoryRepository
	storage    ports.ImageStorage
	exporter   ports.ProductSheetExporter
	log        zerolog.Logger
}

// ProductDeps dependencias de ProductUseCase.
type ProductDeps struct {
	Tx         ports.TxRunner
	Products   repository.ProductRepository
	PriceTiers repository.PriceTierRepository
	Images     repository.ProductImageRepository
	Categories repository.CategoryRepository
	Storage    ports.ImageStorage
	Exporter   ports.ProductSheetExporter
	Log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(d ProductDeps) *ProductUseCase {
	return &ProductUseCase{
		tx:         d.Tx,
		products:   d.Products,
		tiers:      d.PriceTiers,
		images:     d.Images,
		categories: d.Categories,
		storage:    d.Storage,
		exporter:   d.Exporter,
		log:        d.Log,
	}
}

// Create crea el producto con slug único y sus tramos de precio en una transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryID = trimPtr(in.CategoryID)
	tiers, err := uc.validateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	base, err := slug.Unique(slug.Make(in.Name), func(s string) (bool, error) {
		return uc.products.SlugExists(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Slug:             base,
		Description:      in.Description,
		Price:            *in.Price,
		PromotionalPrice: in.PromotionalPrice,
		CategoryID:       in.CategoryID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	stampTiers(tiers, p.ID, now)
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		return r.PriceTiers.Replace(ctx, p.ID, tiers)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// GetByID obtiene el producto con tramos e imágenes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.detail(ctx, p)
}

// Update sobrescribe los datos del producto y reemplaza todos sus tramos. El slug no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryID = trimPtr(in.CategoryID)
	tiers, err := uc.validateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		p, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		p.Name = in.Name
		p.Description = in.Description
		p.Price = *in.Price
		p.PromotionalPrice = in.PromotionalPrice
		p.CategoryID = in.CategoryID
		p.UpdatedAt = now
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		stampTiers(tiers, p.ID, now)
		return r.PriceTiers.Replace(ctx, p.ID, tiers)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista productos con el nombre de su categoría, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page = normalizePage(page)
	filter := repository.ProductFilter{}
	list, err := uc.products.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: pageOf(page, total)}, nil
}

// Delete borra primero los archivos de imagen del storage y luego, en una transacción,
// las filas de imágenes, tramos y el producto. Si falla el borrado de un archivo no se toca la BD.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	imgs, err := uc.images.ListByProduct(ctx, id)
	if err != nil {
		return err
	}
	for _, img := range imgs {
		if err := uc.storage.Remove(ctx, img.Path); err != nil {
			return fmt.Errorf("eliminar archivo %s: %w", img.Path, err)
		}
	}
	return uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Images.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		if err := r.PriceTiers.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return r.Products.Delete(ctx, id)
	})
}

// ListPriceTiers devuelve los tramos del producto ordenados por mínimo.
func (uc *ProductUseCase) ListPriceTiers(ctx context.Context, productID string) ([]dto.PriceTierResponse, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	tiers, err := uc.tiers.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToPriceTierResponses(tiers), nil
}

// ReplacePriceTiers reemplaza todos los tramos del producto en una transacción.
func (uc *ProductUseCase) ReplacePriceTiers(ctx context.Context, productID string, in dto.ReplacePriceTiersRequest) ([]dto.PriceTierResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	tiers := toTierEntities(in.PriceTiers)
	if err := pricing.ValidateTiers(tiers); err != nil {
		return nil, err
	}
	now := time.Now()
	stampTiers(tiers, productID, now)
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		p, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return r.PriceTiers.Replace(ctx, productID, tiers)
	})
	if err != nil {
		return nil, err
	}
	return uc.ListPriceTiers(ctx, productID)
}

// Export genera la planilla del catálogo completo.
func (uc *ProductUseCase) Export(ctx context.Context) ([]byte, error) {
	list, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	tiers, err := uc.tiers.ListByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		r := ToProductResponse(p)
		r.PriceTiers = ToPriceTierResponses(tiers[p.ID])
		rows = append(rows, r)
	}
	return uc.exporter.ExportProducts(ctx, rows)
}

func (uc *ProductUseCase) detail(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	tiers, err := uc.tiers.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	imgs, err := uc.images.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(p)
	out.PriceTiers = ToPriceTierResponses(tiers)
	out.Images = ToImageResponses(imgs, uc.storage)
	for _, img := range out.Images {
		if img.IsMain {
			out.MainImageURL = img.URL
		}
	}
	return &out, nil
}

// validateProduct valida etiquetas, reglas cruzadas de precio, categoría y tramos.
func (uc *ProductUseCase) validateProduct(ctx context.Context, in dto.ProductRequest) ([]entity.PriceTier, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	priceMsg := pricing.PriceProblem(*in.Price)
	if priceMsg != "" {
		verr.Add("price", priceMsg)
	}
	if in.PromotionalPrice != nil {
		// con ambos en escala 2 la comparación es la misma que hará la base
		if msg := pricing.PriceProblem(*in.PromotionalPrice); msg != "" {
			verr.Add("promotional_price", msg)
		} else if priceMsg == "" && !in.PromotionalPrice.LessThan(*in.Price) {
			verr.Add("promotional_price", "debe ser menor que price")
		}
	}
	tiers := toTierEntities(in.PriceTiers)
	if err := pricing.ValidateTiers(tiers); err != nil {
		var tv *domain.ValidationError
		if errors.As(err, &tv) {
			for k, v := range tv.Fields {
				verr.Add(k, v)
			}
		}
	}
	if in.CategoryID != nil && len(verr.Fields) == 0 {
		c, err := uc.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			verr.Add("category_id", "la categoría no existe")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return tiers, nil
}

func toTierEntities(in []dto.PriceTierInput) []entity.PriceTier {
	out := make([]entity.PriceTier, 0, len(in))
	for _, t := range in {
		out = append(out, entity.PriceTier{
			MinQuantity: t.MinQuantity,
			MaxQuantity: t.MaxQuantity,
			Price:       t.Price,
		})
	}
	return out
}

func stampTiers(tiers []entity.PriceTier, productID string, now time.Time) {
	for i := range tiers {
		tiers[i].ID = uuid.New().String()
		tiers[i].ProductID = productID
		tiers[i].CreatedAt = now
	}
}

// ToProductResponse mapea un producto sin tramos ni imágenes.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		Price:            p.Price,
		PromotionalPrice: p.PromotionalPrice,
		CategoryID:       p.CategoryID,
		CategoryName:     p.CategoryName,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToPriceTierResponses mapea tramos.
func ToPriceTierResponses(tiers []entity.PriceTier) []dto.PriceTierResponse {
	out := make([]dto.PriceTierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, dto.PriceTierResponse{
			ID:          t.ID,
			MinQuantity: t.MinQuantity,
			MaxQuantity: t.MaxQuantity,
			Price:       t.Price,
		})
	}
	return out
}

// ToImageResponses mapea imágenes resolviendo su URL pública.
func ToImageResponses(imgs []*entity.ProductImage, storage ports.ImageStorage) []dto.ProductImageResponse {
	out := make([]dto.ProductImageResponse, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, dto.ProductImageResponse{
			ID:        img.ID,
			ProductID: img.ProductID,
			Path:      img.Path,
			URL:       storage.URL(img.Path),
			IsMain:    img.IsMain,
			CreatedAt: img.CreatedAt,
		})
	}
	return out
}
