package repository

import (
	"context"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
)

// ProductFilter filtros opcionales para listados de productos.
type ProductFilter struct {
	CategoryID string // vacío: todas
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos de lectura incluyen CategoryName.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Update no modifica Slug.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	// ListAll ordena por nombre.
	ListAll(ctx context.Context) ([]*entity.Product, error)
	// ClearCategory deja category_id en NULL para los productos de la categoría.
	ClearCategory(ctx context.Context, categoryID string) error
	Delete(ctx context.Context, id string) error
}

// PriceTierRepository define el puerto de persistencia para PriceTier.
type PriceTierRepository interface {
	// ListByProduct ordena por min_quantity ascendente.
	ListByProduct(ctx context.Context, productID string) ([]entity.PriceTier, error)
	ListByProducts(ctx context.Context, productIDs []string) (map[string][]entity.PriceTier, error)
	// Replace borra todos los tramos del producto e inserta los nuevos.
	Replace(ctx context.Context, productID string, tiers []entity.PriceTier) error
	DeleteByProduct(ctx context.Context, productID string) error
}

// ProductImageRepository define el puerto de persistencia para ProductImage.
type ProductImageRepository interface {
	Create(ctx context.Context, image *entity.ProductImage) error
	GetByID(ctx context.Context, id string) (*entity.ProductImage, error)
	// ListByProduct ordena por created_at ascendente.
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error)
	// MainByProducts devuelve la imagen principal de cada producto que tenga una.
	MainByProducts(ctx context.Context, productIDs []string) (map[string]*entity.ProductImage, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	// SetMain marca imageID como principal y desmarca las demás del producto.
	SetMain(ctx context.Context, productID, imageID string) error
	Delete(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, productID string) error
	// AllPaths devuelve el conjunto de rutas referenciadas (barrido de huérfanos).
	AllPaths(ctx context.Context) (map[string]struct{}, error)
}
