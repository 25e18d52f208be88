package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/sipac-estoque/internal/application/analytics"
	"github.com/jhoicas/sipac-estoque/internal/application/inventory"
	"github.com/jhoicas/sipac-estoque/internal/application/report"
	"github.com/jhoicas/sipac-estoque/internal/application/simulator"
	infrapdf "github.com/jhoicas/sipac-estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/sipac-estoque/internal/infrastructure/provider"
	infraxlsx "github.com/jhoicas/sipac-estoque/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/sipac-estoque/internal/interfaces/http"
	"github.com/jhoicas/sipac-estoque/pkg/config"
	"github.com/jhoicas/sipac-estoque/pkg/logger"
	"github.com/jhoicas/sipac-estoque/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("persistencia", cfg.Persistence.Driver).
		Msg("iniciando aplicación")

	// Precios como número JSON (49.9) y no como string.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("telemetría")
	}

	prov, err := provider.Open(ctx, cfg, log.Component("provider"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer prov.Close()

	store := inventory.NewStore()
	mutations := inventory.NewMutationUseCase(prov.TxRunner, prov.Items, prov.Movements, store, log)
	if err := mutations.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial de items")
	}
	if cfg.Persistence.SeedDemo {
		n, err := mutations.Seed(ctx, inventory.DemoCatalog())
		if err != nil {
			log.Fatal().Err(err).Msg("catálogo demo")
		}
		log.Info().Int("creados", n).Msg("catálogo demo cargado")
	}

	dashboardUC := appanalytics.NewDashboardUseCase(store, prov.Movements, appanalytics.FilterDefaults{
		Years:      cfg.Filter.Years,
		Categories: cfg.Filter.Categories,
		PriceMax:   decimal.NewFromFloat(cfg.Filter.PriceMax),
	})
	reportUC := report.NewUseCase(prov.Items, cfg.Report.Title)
	pdfRenderer := infrapdf.NewReportRenderer(cfg.Report.CompanyLine)
	xlsxRenderer := infraxlsx.NewReportWriter()

	sim := simulator.New(mutations, store, cfg.Simulator.Interval, log)
	if cfg.Simulator.AutoStart {
		sim.Start(context.Background())
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SIPAC Estoque API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "ok",
			"service":      cfg.App.Name,
			"persistencia": prov.Driver,
			"itens":        store.Len(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Mutations:   mutations,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		PDF:         pdfRenderer,
		XLSX:        xlsxRenderer,
		Simulator:   sim,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	sim.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre de telemetría")
	}

	log.Info().Msg("aplicación detenida")
}
