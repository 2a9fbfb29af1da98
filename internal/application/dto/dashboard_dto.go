package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	ProductCount int `json:"product_count"`
	ClientCount  int `json:"client_count"`
	QuoteCount   int `json:"quote_count"`

	QuotesByStatus []StatusCountDTO `json:"quotes_by_status"`

	// Suma de total_amount de las cotizaciones creadas en el mes en curso
	MonthlyQuoted decimal.Decimal `json:"monthly_quoted"`

	RecentQuotes []QuoteResponse `json:"recent_quotes"`

	DateLabel string `json:"date_label"` // ej: "Outubro 2026"
}

// StatusCountDTO cantidad de cotizaciones en un estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
