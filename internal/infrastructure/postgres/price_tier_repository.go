package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

var _ repository.PriceTierRepository = (*PriceTierRepo)(nil)

// PriceTierRepo tramos de precio por volumen.
type PriceTierRepo struct {
	q Querier
}

// NewPriceTierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceTierRepository(q Querier) *PriceTierRepo {
	return &PriceTierRepo{q: q}
}

// ListByProduct tramos del producto ordenados por min_quantity.
func (r *PriceTierRepo) ListByProduct(ctx context.Context, productID string) ([]entity.PriceTier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, min_quantity, max_quantity, price, created_at
		FROM price_tiers WHERE product_id = $1 ORDER BY min_quantity`, productID)
	if err != nil {
		return nil, fmt.Errorf("list price tiers: %w", err)
	}
	return collectTiers(rows)
}

// ListByProducts tramos de varios productos agrupados por producto.
func (r *PriceTierRepo) ListByProducts(ctx context.Context, productIDs []string) (map[string][]entity.PriceTier, error) {
	out := make(map[string][]entity.PriceTier, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, min_quantity, max_quantity, price, created_at
		FROM price_tiers WHERE product_id = ANY($1::uuid[]) ORDER BY product_id, min_quantity`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list price tiers: %w", err)
	}
	tiers, err := collectTiers(rows)
	if err != nil {
		return nil, err
	}
	for _, t := range tiers {
		out[t.ProductID] = append(out[t.ProductID], t)
	}
	return out, nil
}

// Replace borra los tramos del producto e inserta los nuevos. Llamar dentro de una tx.
func (r *PriceTierRepo) Replace(ctx context.Context, productID string, tiers []entity.PriceTier) error {
	if err := r.DeleteByProduct(ctx, productID); err != nil {
		return err
	}
	query := `
		INSERT INTO price_tiers (id, product_id, min_quantity, max_quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, t := range tiers {
		if _, err := r.q.Exec(ctx, query, t.ID, productID, t.MinQuantity, t.MaxQuantity, t.Price, t.CreatedAt); err != nil {
			return fmt.Errorf("insert price tier: %w", err)
		}
	}
	return nil
}

// DeleteByProduct elimina todos los tramos del producto.
func (r *PriceTierRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM price_tiers WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete price tiers: %w", err)
	}
	return nil
}

func collectTiers(rows pgx.Rows) ([]entity.PriceTier, error) {
	defer rows.Close()
	var list []entity.PriceTier
	for rows.Next() {
		var t entity.PriceTier
		if err := rows.Scan(&t.ID, &t.ProductID, &t.MinQuantity, &t.MaxQuantity, &t.Price, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price tier: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
