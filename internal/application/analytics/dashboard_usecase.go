// Package analytics contiene los casos de uso de lectura del dashboard del panel.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orcamentos-api/internal/application/dto"
	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

const dashboardRecentQuotes = 5 // cotizaciones recientes en el widget

// DashboardUseCase genera el resumen del panel.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. Counts              → productos, clientes, cotizaciones
//  2. QuotesByStatus      → desglose por estado
//  3. QuotedAmount(mes)   → monto cotizado en el mes en curso
//  4. RecentQuotes(5)     → últimas cotizaciones
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	type countsResult struct {
		counts repository.CatalogCounts
		err    error
	}
	type statusResult struct {
		rows []repository.StatusCount
		err  error
	}
	type amountResult struct {
		amount decimal.Decimal
		err    error
	}
	type recentResult struct {
		quotes []*entity.Quote
		err    error
	}

	countsCh := make(chan countsResult, 1)
	statusCh := make(chan statusResult, 1)
	amountCh := make(chan amountResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		c, err := uc.analyticsRepo.Counts(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.QuotesByStatus(ctx)
		statusCh <- statusResult{rows, err}
	}()
	go func() {
		a, err := uc.analyticsRepo.QuotedAmount(ctx, monthStart, monthEnd)
		amountCh <- amountResult{a, err}
	}()
	go func() {
		q, err := uc.analyticsRepo.RecentQuotes(ctx, dashboardRecentQuotes)
		recentCh <- recentResult{q, err}
	}()

	counts := <-countsCh
	status := <-statusCh
	amount := <-amountCh
	recent := <-recentCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", counts.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: estados: %w", status.err)
	}
	if amount.err != nil {
		return nil, fmt.Errorf("dashboard: monto del mes: %w", amount.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: recientes: %w", recent.err)
	}

	byStatus := make([]dto.StatusCountDTO, 0, len(status.rows))
	for _, s := range status.rows {
		byStatus = append(byStatus, dto.StatusCountDTO{Status: s.Status, Count: s.Count})
	}
	recentDTO := make([]dto.QuoteResponse, 0, len(recent.quotes))
	for _, q := range recent.quotes {
		recentDTO = append(recentDTO, dto.QuoteResponse{
			ID:          q.ID,
			UniqueHash:  q.UniqueHash,
			ClientID:    q.ClientID,
			ClientName:  q.ClientName,
			UserID:      q.UserID,
			UserName:    q.UserName,
			Status:      q.Status,
			TotalAmount: q.TotalAmount,
			CreatedAt:   q.CreatedAt,
			UpdatedAt:   q.UpdatedAt,
		})
	}

	return &dto.DashboardSummaryDTO{
		ProductCount:   counts.counts.Products,
		ClientCount:    counts.counts.Clients,
		QuoteCount:     counts.counts.Quotes,
		QuotesByStatus: byStatus,
		MonthlyQuoted:  amount.amount.Round(2),
		RecentQuotes:   recentDTO,
		DateLabel:      monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Outubro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
