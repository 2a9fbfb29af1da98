package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

var _ repository.ProductImageRepository = (*ProductImageRepo)(nil)

// ProductImageRepo filas de product_images. Los archivos viven en el storage.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

const imageColumns = `id, product_id, path, is_main, created_at`

func scanImage(row pgx.Row) (*entity.ProductImage, error) {
	var img entity.ProductImage
	if err := row.Scan(&img.ID, &img.ProductID, &img.Path, &img.IsMain, &img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

// Create inserta la fila siempre con is_main = false; SetMain decide la principal.
func (r *ProductImageRepo) Create(ctx context.Context, img *entity.ProductImage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_images (id, product_id, path, is_main, created_at)
		VALUES ($1, $2, $3, FALSE, $4)`, img.ID, img.ProductID, img.Path, img.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

// GetByID obtiene una imagen por ID.
func (r *ProductImageRepo) GetByID(ctx context.Context, id string) (*entity.ProductImage, error) {
	img, err := scanImage(r.q.QueryRow(ctx, `SELECT `+imageColumns+` FROM product_images WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product image: %w", err)
	}
	return img, nil
}

// ListByProduct imágenes del producto, más antiguas primero.
func (r *ProductImageRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+imageColumns+` FROM product_images
		WHERE product_id = $1 ORDER BY created_at, id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, img)
	}
	return list, rows.Err()
}

// MainByProducts imagen principal de cada producto que tenga una.
func (r *ProductImageRepo) MainByProducts(ctx context.Context, productIDs []string) (map[string]*entity.ProductImage, error) {
	out := make(map[string]*entity.ProductImage, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+imageColumns+` FROM product_images
		WHERE is_main AND product_id = ANY($1::uuid[])`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("main images: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		out[img.ProductID] = img
	}
	return out, rows.Err()
}

// CountByProduct cantidad de imágenes del producto.
func (r *ProductImageRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_images WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count product images: %w", err)
	}
	return n, nil
}

// SetMain desmarca la principal actual y marca imageID. Dos sentencias para no chocar con
// el índice único parcial (product_id) WHERE is_main.
func (r *ProductImageRepo) SetMain(ctx context.Context, productID, imageID string) error {
	if _, err := r.q.Exec(ctx, `
		UPDATE product_images SET is_main = FALSE
		WHERE product_id = $1 AND is_main AND id <> $2`, productID, imageID); err != nil {
		return fmt.Errorf("unset main image: %w", err)
	}
	if _, err := r.q.Exec(ctx, `
		UPDATE product_images SET is_main = TRUE
		WHERE product_id = $1 AND id = $2`, productID, imageID); err != nil {
		return fmt.Errorf("set main image: %w", err)
	}
	return nil
}

// Delete elimina la fila de una imagen.
func (r *ProductImageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_images WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product image: %w", err)
	}
	return nil
}

// DeleteByProduct elimina todas las filas de imágenes del producto.
func (r *ProductImageRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	return nil
}

// AllPaths conjunto de claves referenciadas (para el barrido de huérfanos).
func (r *ProductImageRepo) AllPaths(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.q.Query(ctx, `SELECT path FROM product_images`)
	if err != nil {
		return nil, fmt.Errorf("list image paths: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan image path: %w", err)
		}
		out[p] = struct{}{}
	}
	return out, rows.Err()
}
