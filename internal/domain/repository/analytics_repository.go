package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
)

// StatusCount cantidad de cotizaciones por estado.
type StatusCount struct {
	Status string
	Count  int
}

// CatalogCounts totales del panel.
type CatalogCounts struct {
	Products int
	Clients  int
	Quotes   int
}

// AnalyticsRepository consultas de lectura para el dashboard (read-only).
type AnalyticsRepository interface {
	Counts(ctx context.Context) (CatalogCounts, error)
	// QuotesByStatus ordena por cantidad descendente.
	QuotesByStatus(ctx context.Context) ([]StatusCount, error)
	// QuotedAmount suma total_amount de las cotizaciones creadas en [from, to).
	QuotedAmount(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// RecentQuotes las últimas n cotizaciones con ClientName y UserName.
	RecentQuotes(ctx context.Context, n int) ([]*entity.Quote, error)
}
