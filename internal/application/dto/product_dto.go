package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceTierInput tramo de precio por volumen en formularios.
type PriceTierInput struct {
	MinQuantity int             `json:"min_quantity" validate:"min=1"`
	MaxQuantity *int            `json:"max_quantity" validate:"omitempty,min=1"`
	Price       decimal.Decimal `json:"price"`
}

// ProductRequest entrada para crear o actualizar un producto.
// PriceTiers reemplaza por completo los tramos existentes.
type ProductRequest struct {
	Name             string           `json:"name" validate:"required,max=255"`
	Description      string           `json:"description"`
	Price            *decimal.Decimal `json:"price" validate:"required"`
	PromotionalPrice *decimal.Decimal `json:"promotional_price"`
	CategoryID       *string          `json:"category_id" validate:"omitempty,uuid"`
	PriceTiers       []PriceTierInput `json:"price_tiers" validate:"dive"`
}

// ReplacePriceTiersRequest entrada de PUT /api/products/{id}/price-tiers.
type ReplacePriceTiersRequest struct {
	PriceTiers []PriceTierInput `json:"price_tiers" validate:"dive"`
}

// PriceTierResponse salida de un tramo.
type PriceTierResponse struct {
	ID          string          `json:"id"`
	MinQuantity int             `json:"min_quantity"`
	MaxQuantity *int            `json:"max_quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ProductImageResponse salida de una imagen de producto.
type ProductImageResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse salida de un producto. PriceTiers e Images solo se llenan en el detalle.
type ProductResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Slug             string                 `json:"slug"`
	Description      string                 `json:"description"`
	Price            decimal.Decimal        `json:"price"`
	PromotionalPrice *decimal.Decimal       `json:"promotional_price"`
	CategoryID       *string                `json:"category_id"`
	CategoryName     string                 `json:"category_name,omitempty"`
	MainImageURL     string                 `json:"main_image_url,omitempty"`
	PriceTiers       []PriceTierResponse    `json:"price_tiers,omitempty"`
	Images           []ProductImageResponse `json:"images,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// UploadImageInput archivo recibido en multipart.
type UploadImageInput struct {
	Filename    string
	ContentType string
	Size        int64
	IsMain      bool
}
