package repository

import (
	"context"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// List ordena por fecha de creación descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Category, error)
	Count(ctx context.Context) (int, error)
	// ListAll ordena por nombre (selects de formularios, tienda).
	ListAll(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
