package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/sipac-estoque/internal/application/inventory"
	"github.com/jhoicas/sipac-estoque/internal/infrastructure/provider"
	"github.com/jhoicas/sipac-estoque/pkg/config"
	"github.com/jhoicas/sipac-estoque/pkg/logger"
)

var verbose = flag.Bool("v", false, "log detallado en stderr")

// app dependencias compartidas por los comandos.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	prov      *provider.Provider
	store     *inventory.Store
	mutations *inventory.MutationUseCase
}

// openApp carga la configuración, abre el proveedor y deja el Store cargado.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})

	prov, err := provider.Open(ctx, cfg, log.Component("provider"))
	if err != nil {
		return nil, err
	}
	store := inventory.NewStore()
	mutations := inventory.NewMutationUseCase(prov.TxRunner, prov.Items, prov.Movements, store, log)
	if err := mutations.Refresh(ctx); err != nil {
		prov.Close()
		return nil, err
	}
	return &app{cfg: cfg, log: log, prov: prov, store: store, mutations: mutations}, nil
}

func (a *app) Close() { a.prov.Close() }
