package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Orcamentos-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del panel.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del panel.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (totales del catálogo, cotizaciones por estado,
// monto cotizado en el mes en curso y las cinco cotizaciones más recientes).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
