package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sipac-estoque/internal/application/report"
)

// ReportHandler relatorio JSON y exportaciones.
type ReportHandler struct {
	uc   *report.UseCase
	pdf  report.Renderer
	xlsx report.Renderer
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, pdf, xlsx report.Renderer) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf, xlsx: xlsx}
}

// Get godoc
// @Summary      Relatorio de estoque
// @Tags         relatorio
// @Produce      json
// @Param        categoria  query  string  false  "Filtrar por categoría"
// @Success      200  {object}  dto.ReportDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/relatorio [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.Context(), c.Query("categoria"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Exportar relatorio en PDF
// @Tags         relatorio
// @Produce      application/pdf
// @Param        categoria  query  string  false  "Filtrar por categoría"
// @Success      200
// @Router       /api/relatorio/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	return h.export(c, h.pdf)
}

// XLSX godoc
// @Summary      Exportar relatorio en Excel
// @Tags         relatorio
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        categoria  query  string  false  "Filtrar por categoría"
// @Success      200
// @Router       /api/relatorio/xlsx [get]
func (h *ReportHandler) XLSX(c *fiber.Ctx) error {
	return h.export(c, h.xlsx)
}

func (h *ReportHandler) export(c *fiber.Ctx, r report.Renderer) error {
	f, err := h.uc.Export(c.Context(), c.Query("categoria"), r)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Content)
}
