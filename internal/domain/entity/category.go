package entity

import "time"

// Category agrupa productos del catálogo. Al eliminarse, sus productos quedan sin categoría.
type Category struct {
	ID          string
	Name        string // único
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
