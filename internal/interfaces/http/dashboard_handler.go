package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercia-api/internal/application/analytics"
)

// DashboardHandler maneja los resúmenes de conteos del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// AdminSummary godoc
// @Summary      Conteos globales de la plataforma
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/admin [get]
func (h *DashboardHandler) AdminSummary(c *fiber.Ctx) error {
	out, err := h.uc.AdminSummary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "resumen de plataforma", out)
}

// CompanySummary godoc
// @Summary      Conteos del tenant del usuario autenticado
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) CompanySummary(c *fiber.Ctx) error {
	out, err := h.uc.CompanySummary(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "resumen de la empresa", out)
}
