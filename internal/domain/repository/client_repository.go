package repository

import (
	"context"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// FindByContactMain devuelve el primer cliente con ese contacto principal, o nil.
	FindByContactMain(ctx context.Context, contact string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	Count(ctx context.Context) (int, error)
	ListAll(ctx context.Context) ([]*entity.Client, error)
	Delete(ctx context.Context, id string) error
}
