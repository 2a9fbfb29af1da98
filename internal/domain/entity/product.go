package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Slug se genera a partir del nombre al crear y no cambia después.
type Product struct {
	ID               string
	Name             string
	Slug             string
	Description      string
	Price            decimal.Decimal  // precio base
	PromotionalPrice *decimal.Decimal // nil si no hay promoción; si existe debe ser < Price
	CategoryID       *string          // nil si no tiene categoría
	CategoryName     string           // solo lectura (JOIN)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PriceTier precio unitario aplicable a partir de MinQuantity unidades.
type PriceTier struct {
	ID          string
	ProductID   string
	MinQuantity int
	MaxQuantity *int // nil: tramo abierto
	Price       decimal.Decimal
	CreatedAt   time.Time
}

// ProductImage archivo de imagen en el storage. Como máximo una por producto con IsMain.
type ProductImage struct {
	ID        string
	ProductID string
	Path      string // clave del objeto en el bucket
	IsMain    bool
	CreatedAt time.Time
}
