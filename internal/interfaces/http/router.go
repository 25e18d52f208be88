package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sipac-estoque/internal/application/analytics"
	"github.com/jhoicas/sipac-estoque/internal/application/inventory"
	"github.com/jhoicas/sipac-estoque/internal/application/report"
	"github.com/jhoicas/sipac-estoque/internal/application/simulator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Mutations   *inventory.MutationUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *report.UseCase
	PDF         report.Renderer
	XLSX        report.Renderer
	Simulator   *simulator.Simulator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Items
	items := api.Group("/itens")
	itemHandler := NewItemHandler(deps.Mutations)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Put("/:id/saida", itemHandler.RegisterSale)

	// Ledger
	movements := api.Group("/movimentos")
	movementHandler := NewMovementHandler(deps.Mutations)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)

	// Relatorio
	reports := api.Group("/relatorio")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDF, deps.XLSX)
	reports.Get("/", reportHandler.Get)
	reports.Get("/pdf", reportHandler.PDF)
	reports.Get("/xlsx", reportHandler.XLSX)

	// Dashboard y auditoría
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.Get)
	api.Get("/auditoria", dashboardHandler.Audit)

	// Simulador IoT
	if deps.Simulator != nil {
		sim := api.Group("/simulador")
		simHandler := NewSimulatorHandler(deps.Simulator)
		sim.Get("/", simHandler.Status)
		sim.Post("/iniciar", simHandler.Start)
		sim.Post("/parar", simHandler.Stop)
	}
}
