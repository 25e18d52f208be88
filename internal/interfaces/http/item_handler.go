package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/application/inventory"
)

// ItemHandler CRUD de items y venta por ID. Toda escritura pasa por MutationUseCase.
type ItemHandler struct {
	uc *inventory.MutationUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.MutationUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar items
// @Description  Recarga el estado desde el proveedor de persistencia.
// @Tags         itens
// @Produce      json
// @Param        categoria  query  string  false  "Filtrar por categoría exacta"
// @Success      200  {array}   dto.ItemResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/itens [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.Context(), c.Query("categoria"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear item
// @Description  La quantidade inicial cuenta como entrada y queda registrada en el ledger.
// @Tags         itens
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Datos del item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/itens [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar item
// @Description  Registro completo; entrada/saida se reconcilian contra la quantidade anterior.
// @Tags         itens
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del item"
// @Param        body  body  dto.ItemRequest  true  "Datos del item"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar item
// @Description  Los movimientos del item permanecen en el ledger.
// @Tags         itens
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/itens/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// RegisterSale godoc
// @Summary      Registrar venta
// @Tags         itens
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del item"
// @Param        body  body  dto.SaleRequest  true  "Unidades vendidas"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/itens/{id}/saida [put]
func (h *ItemHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterSale(c.Context(), c.Params("id"), in.Qtd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
