package repository

import (
	"context"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
)

// PaymentMethodRepository define el puerto de persistencia para PaymentMethod (DIP).
type PaymentMethodRepository interface {
	Create(ctx context.Context, pm *entity.PaymentMethod) error
	GetByID(ctx context.Context, id string) (*entity.PaymentMethod, error)
	Update(ctx context.Context, pm *entity.PaymentMethod) error
	List(ctx context.Context, limit, offset int) ([]*entity.PaymentMethod, error)
	Count(ctx context.Context) (int, error)
	ListActive(ctx context.Context) ([]*entity.PaymentMethod, error)
	Delete(ctx context.Context, id string) error
}
