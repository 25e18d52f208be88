package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sipac-estoque/internal/application/simulator"
)

// SimulatorHandler ciclo de vida del feed IoT simulado.
type SimulatorHandler struct {
	sim *simulator.Simulator
}

// NewSimulatorHandler construye el handler.
func NewSimulatorHandler(sim *simulator.Simulator) *SimulatorHandler {
	return &SimulatorHandler{sim: sim}
}

// Status godoc
// @Summary      Estado del simulador
// @Tags         simulador
// @Produce      json
// @Success      200  {object}  dto.SimulatorStatusDTO
// @Router       /api/simulador [get]
func (h *SimulatorHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.sim.Status())
}

// Start godoc
// @Summary      Iniciar simulador
// @Description  Idempotente: si ya está activo no hace nada.
// @Tags         simulador
// @Produce      json
// @Success      200  {object}  dto.SimulatorStatusDTO
// @Router       /api/simulador/iniciar [post]
func (h *SimulatorHandler) Start(c *fiber.Ctx) error {
	// El contexto de fasthttp se recicla al terminar la request; el ciclo necesita uno propio.
	h.sim.Start(context.Background())
	return c.JSON(h.sim.Status())
}

// Stop godoc
// @Summary      Detener simulador
// @Tags         simulador
// @Produce      json
// @Success      200  {object}  dto.SimulatorStatusDTO
// @Router       /api/simulador/parar [post]
func (h *SimulatorHandler) Stop(c *fiber.Ctx) error {
	h.sim.Stop()
	return c.JSON(h.sim.Status())
}
