package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sipac-estoque/internal/application/analytics"
)

// DashboardHandler vistas derivadas (KPIs, tabla, arara, gráficos) y auditoría del ledger.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Dashboard de estoque
// @Description  Sin parámetros aplica el filtro por defecto (todos los años y categorías, precoMax 1200, -valor).
// @Tags         dashboard
// @Produce      json
// @Param        anos        query  string  false  "Años separados por coma; vacío = ninguno"
// @Param        categorias  query  string  false  "Categorías separadas por coma; vacío = ninguna"
// @Param        precoMax    query  number  false  "Precio máximo"
// @Param        busca       query  string  false  "Texto libre (tag, nome, categoria, arara)"
// @Param        sort        query  string  false  "Campo de orden; prefijo - = descendente"
// @Success      200  {object}  dto.DashboardDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	f := h.uc.NewFilter()
	if err := applyFilterQuery(c, f); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetDashboard(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Audit godoc
// @Summary      Auditoría del ledger
// @Description  Compara, por tag, las sumas del ledger con los contadores entrada/saida.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.AuditDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/auditoria [get]
func (h *DashboardHandler) Audit(c *fiber.Ctx) error {
	out, err := h.uc.Audit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
