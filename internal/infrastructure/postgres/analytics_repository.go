package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// Counts totales de productos, clientes y cotizaciones en una sola consulta.
func (r *AnalyticsRepo) Counts(ctx context.Context) (repository.CatalogCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products) AS products,
	    (SELECT COUNT(*) FROM clients)  AS clients,
	    (SELECT COUNT(*) FROM quotes)   AS quotes`
	var c repository.CatalogCounts
	if err := r.pool.QueryRow(ctx, query).Scan(&c.Products, &c.Clients, &c.Quotes); err != nil {
		return c, fmt.Errorf("analytics.Counts: %w", err)
	}
	return c, nil
}

// QuotesByStatus cantidad de cotizaciones por estado, de mayor a menor.
func (r *AnalyticsRepo) QuotesByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*) AS total
	FROM quotes
	GROUP BY status
	ORDER BY total DESC, status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.QuotesByStatus: %w", err)
	}
	defer rows.Close()
	var out []repository.StatusCount
	for rows.Next() {
		var s repository.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, fmt.Errorf("analytics.QuotesByStatus scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// QuotedAmount suma de total_amount de las cotizaciones creadas en [from, to).
func (r *AnalyticsRepo) QuotedAmount(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0)
	FROM quotes
	WHERE created_at >= $1 AND created_at < $2`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.QuotedAmount: %w", err)
	}
	return total, nil
}

// RecentQuotes las últimas n cotizaciones con nombres de cliente y vendedor.
func (r *AnalyticsRepo) RecentQuotes(ctx context.Context, n int) ([]*entity.Quote, error) {
	rows, err := r.pool.Query(ctx, quoteSelect+` ORDER BY q.created_at DESC, q.id LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("analytics.RecentQuotes: %w", err)
	}
	list, err := collectQuotes(rows)
	if err != nil {
		return nil, fmt.Errorf("analytics.RecentQuotes: %w", err)
	}
	return list, nil
}
