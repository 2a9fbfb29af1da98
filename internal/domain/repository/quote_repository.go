package repository

import (
	"context"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
)

// QuoteRepository define el puerto de persistencia para Quote y sus líneas (DIP).
// Los métodos de lectura incluyen ClientName y UserName.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	GetByHash(ctx context.Context, hash string) (*entity.Quote, error)
	// Update sobrescribe cliente, estado, total, condiciones de pago y entrega.
	Update(ctx context.Context, quote *entity.Quote) error
	List(ctx context.Context, limit, offset int) ([]*entity.Quote, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error

	// Items devuelve las líneas con ProductName, ordenadas por nombre de producto.
	Items(ctx context.Context, quoteID string) ([]entity.QuoteItem, error)
	// ReplaceItems borra todas las líneas de la cotización e inserta items.
	ReplaceItems(ctx context.Context, quoteID string, items []entity.QuoteItem) error
}
