// Package storefront proyecciones públicas (sin sesión) del catálogo y el envío de
// cotizaciones por autoservicio.
package storefront

import (
	"context"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/application/ports"
	"github.com/jhoicas/Orcamentos-api/internal/application/quoting"
	"github.com/jhoicas/Orcamentos-api/internal/application/usecase"
	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
	"github.com/jhoicas/Orcamentos-api/pkg/validation"
)

// PerPage productos por página en la vitrina.
const PerPage = 12

// Deps dependencias del caso de uso.
type Deps struct {
	Products   repository.ProductRepository
	PriceTiers repository.PriceTierRepository
	Images     repository.ProductImageRepository
	Categories repository.CategoryRepository
	Storage    ports.ImageStorage
	Settings   quoting.SettingsProvider
	Quotes     *quoting.UseCase
}

// UseCase casos de uso de la tienda.
type UseCase struct {
	products   repository.ProductRepository
	tiers      repository.PriceTierRepository
	images     repository.ProductImageRepository
	categories repository.CategoryRepository
	storage    ports.ImageStorage
	settings   quoting.SettingsProvider
	quotes     *quoting.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	return &UseCase{
		products:   d.Products,
		tiers:      d.PriceTiers,
		images:     d.Images,
		categories: d.Categories,
		storage:    d.Storage,
		settings:   d.Settings,
		quotes:     d.Quotes,
	}
}

// Products vitrina paginada (más recientes primero) con la URL de la imagen principal.
// categoryID vacío lista todas las categorías. page empieza en 1; una página posterior
// a la última devuelve la lista vacía sin consultar productos.
func (uc *UseCase) Products(ctx context.Context, categoryID string, page int) (*dto.StorefrontProductsResponse, error) {
	if categoryID != "" && !validation.Var(categoryID, "uuid") {
		return nil, domain.NewValidationError("category_id", "debe ser un identificador válido")
	}
	if page < 1 {
		page = 1
	}
	filter := repository.ProductFilter{CategoryID: categoryID}
	total, err := uc.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	lastPage := (total + PerPage - 1) / PerPage
	if lastPage < 1 {
		lastPage = 1
	}
	var list []*entity.Product
	if page <= lastPage {
		list, err = uc.products.List(ctx, filter, PerPage, (page-1)*PerPage)
		if err != nil {
			return nil, err
		}
	}
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	mains, err := uc.images.MainByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		r := usecase.ToProductResponse(p)
		if img, ok := mains[p.ID]; ok {
			r.MainImageURL = uc.storage.URL(img.Path)
		}
		items = append(items, r)
	}
	categories, err := uc.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StorefrontProductsResponse{
		Items:      items,
		Categories: categories,
		Page:       dto.StorefrontPage{Page: page, PerPage: PerPage, Total: total, LastPage: lastPage},
	}, nil
}

// ProductBySlug detalle público del producto con tramos e imágenes.
func (uc *UseCase) ProductBySlug(ctx context.Context, slug string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	tiers, err := uc.tiers.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	imgs, err := uc.images.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := usecase.ToProductResponse(p)
	out.PriceTiers = usecase.ToPriceTierResponses(tiers)
	out.Images = usecase.ToImageResponses(imgs, uc.storage)
	out.MainImageURL = mainURL(imgs, uc.storage)
	return &out, nil
}

// Categories todas las categorías por nombre.
func (uc *UseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		})
	}
	return out, nil
}

// Settings configuración pública de la empresa.
func (uc *UseCase) Settings(ctx context.Context) (dto.SettingsResponse, error) {
	return uc.settings.GetAll(ctx)
}

// Cart datos para armar el carrito en el cliente: productos con tramos, categorías y configuración.
func (uc *UseCase) Cart(ctx context.Context) (*dto.CartResponse, error) {
	products, err := quoting.ProductsWithTiers(ctx, uc.products, uc.tiers)
	if err != nil {
		return nil, err
	}
	categories, err := uc.Categories(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := uc.settings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CartResponse{Products: products, Categories: categories, Settings: settings}, nil
}

// PreviewCart precios y total del carrito sin persistir.
func (uc *UseCase) PreviewCart(ctx context.Context, in dto.QuotePreviewRequest) (*dto.QuotePreviewResponse, error) {
	return uc.quotes.Preview(ctx, in)
}

// SubmitQuote crea la cotización por autoservicio.
func (uc *UseCase) SubmitQuote(ctx context.Context, in dto.SelfServiceQuoteRequest) (*dto.QuoteCreatedResponse, error) {
	return uc.quotes.CreateSelfService(ctx, in)
}

func mainURL(imgs []*entity.ProductImage, storage ports.ImageStorage) string {
	for _, img := range imgs {
		if img.IsMain {
			return storage.URL(img.Path)
		}
	}
	return ""
}
