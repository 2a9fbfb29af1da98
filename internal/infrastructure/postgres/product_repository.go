package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Orcamentos-api/internal/domain"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.slug, COALESCE(p.description, ''), p.price, p.promotional_price,
	       p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.PromotionalPrice,
		&p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, slug, description, price, promotional_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Slug, nullIfEmpty(p.Description),
		p.Price, p.PromotionalPrice, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con el nombre de su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.id = $1`, id)
}

// GetBySlug obtiene un producto por slug.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.slug = $1`, slug)
}

// SlugExists indica si el slug ya está tomado.
func (r *ProductRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}

// Update actualiza los datos del producto. El slug no se toca.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, description = $4, price = $5, promotional_price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, nullIfEmpty(p.Description), p.Price, p.PromotionalPrice, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos, más recientes primero, opcionalmente por categoría.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	query := productSelect + `
		WHERE ($1 = '' OR p.category_id::text = $1)
		ORDER BY p.created_at DESC, p.id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, query, f.CategoryID, limit, offset)
}

// Count total de productos con el mismo filtro de List.
func (r *ProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE ($1 = '' OR category_id::text = $1)`, f.CategoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ListAll todos los productos por nombre.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` ORDER BY p.name`)
}

// ClearCategory deja sin categoría los productos de categoryID.
func (r *ProductRepo) ClearCategory(ctx context.Context, categoryID string) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET category_id = NULL, updated_at = NOW() WHERE category_id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("clear category: %w", err)
	}
	return nil
}

// Delete elimina el producto. Tramos, imágenes y líneas de cotización caen por FK en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
