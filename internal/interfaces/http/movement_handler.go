package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/application/inventory"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

// MovementHandler movimientos por tag (botones +/-) y lectura del ledger.
type MovementHandler struct {
	uc *inventory.MutationUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MutationUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimiento por tag
// @Tags         movimentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "tag, tipo (entrada|saida), qtd"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movimentos [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ApplyDelta(c.Context(), in.Tag, in.Tipo, in.Qtd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Ledger de movimientos
// @Tags         movimentos
// @Produce      json
// @Param        anos  query  string  false  "Años separados por coma (2023,2024)"
// @Param        tag   query  string  false  "Solo movimientos de este tag"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimentos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	years, err := parseYears(c.Query("anos"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMovements(c.Context(), repository.MovementFilter{Years: years, ItemTag: c.Query("tag")})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
