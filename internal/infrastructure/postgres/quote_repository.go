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

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo cabeceras de cotización (quotes) y sus líneas (quote_product).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteSelect = `
	SELECT q.id, q.unique_hash, q.client_id, q.user_id, q.status, q.total_amount,
	       COALESCE(q.payment_terms, ''), COALESCE(q.delivery_info, ''),
	       c.name, COALESCE(u.name, ''), q.created_at, q.updated_at
	FROM quotes q
	JOIN clients c ON c.id = q.client_id
	LEFT JOIN users u ON u.id = q.user_id`

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	err := row.Scan(
		&q.ID, &q.UniqueHash, &q.ClientID, &q.UserID, &q.Status, &q.TotalAmount,
		&q.PaymentTerms, &q.DeliveryInfo, &q.ClientName, &q.UserName, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create persiste la cabecera.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	query := `
		INSERT INTO quotes (id, unique_hash, client_id, user_id, status, total_amount, payment_terms, delivery_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.UniqueHash, q.ClientID, q.UserID, q.Status, q.TotalAmount,
		nullIfEmpty(q.PaymentTerms), nullIfEmpty(q.DeliveryInfo), q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera con nombres de cliente y vendedor.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	return r.getOne(ctx, quoteSelect+` WHERE q.id = $1`, id)
}

// GetByHash obtiene la cabecera por token público.
func (r *QuoteRepo) GetByHash(ctx context.Context, hash string) (*entity.Quote, error) {
	return r.getOne(ctx, quoteSelect+` WHERE q.unique_hash = $1`, hash)
}

// Update sobrescribe cliente, estado, total y condiciones. Token, vendedor y created_at no cambian.
func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	query := `
		UPDATE quotes
		SET client_id = $2, status = $3, total_amount = $4, payment_terms = $5, delivery_info = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.ClientID, q.Status, q.TotalAmount, nullIfEmpty(q.PaymentTerms), nullIfEmpty(q.DeliveryInfo), q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

// List más recientes primero.
func (r *QuoteRepo) List(ctx context.Context, limit, offset int) ([]*entity.Quote, error) {
	rows, err := r.q.Query(ctx, quoteSelect+` ORDER BY q.created_at DESC, q.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return collectQuotes(rows)
}

// Count total de cotizaciones.
func (r *QuoteRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

// Delete elimina la cabecera; las líneas caen por FK en cascada.
func (r *QuoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// Items líneas de la cotización con el nombre del producto.
func (r *QuoteRepo) Items(ctx context.Context, quoteID string) ([]entity.QuoteItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT qp.quote_id, qp.product_id, p.name, qp.quantity, qp.unit_price
		FROM quote_product qp
		JOIN products p ON p.id = qp.product_id
		WHERE qp.quote_id = $1
		ORDER BY p.name`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var list []entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.QuoteID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ReplaceItems borra las líneas de la cotización e inserta items. Llamar dentro de una tx.
func (r *QuoteRepo) ReplaceItems(ctx context.Context, quoteID string, items []entity.QuoteItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM quote_product WHERE quote_id = $1`, quoteID); err != nil {
		return fmt.Errorf("delete quote items: %w", err)
	}
	query := `
		INSERT INTO quote_product (quote_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query, quoteID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
			return fmt.Errorf("insert quote item: %w", err)
		}
	}
	return nil
}

func (r *QuoteRepo) getOne(ctx context.Context, query string, arg any) (*entity.Quote, error) {
	q, err := scanQuote(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func collectQuotes(rows pgx.Rows) ([]*entity.Quote, error) {
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}
