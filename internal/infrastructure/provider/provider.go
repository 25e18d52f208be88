// Package provider abre el proveedor de persistencia elegido por PERSISTENCE_DRIVER
// y entrega los tres puertos (items, ledger, unidad de trabajo) ya conectados.
package provider

import (
	"context"
	"fmt"

	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
	"github.com/jhoicas/sipac-estoque/internal/infrastructure/firestore"
	"github.com/jhoicas/sipac-estoque/internal/infrastructure/memory"
	"github.com/jhoicas/sipac-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/sipac-estoque/pkg/config"
	"github.com/jhoicas/sipac-estoque/pkg/logger"
)

// Provider puertos de persistencia listos para inyectar.
type Provider struct {
	Driver    string
	Items     repository.ItemRepository
	Movements repository.MovementRepository
	TxRunner  repository.TxRunner

	closeFn func()
}

// Close libera conexiones. Seguro de llamar con cualquier driver.
func (p *Provider) Close() {
	if p.closeFn != nil {
		p.closeFn()
	}
}

// Open conecta con el driver configurado. Con postgres aplica las migraciones si DB_MIGRATE=true.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Provider, error) {
	if log == nil {
		log = logger.Nop()
	}
	switch cfg.Persistence.Driver {
	case config.DriverMemory:
		db := memory.NewDB()
		log.Warn().Msg("persistencia en memoria: los datos se pierden al reiniciar")
		return &Provider{
			Driver:    config.DriverMemory,
			Items:     db.Items(),
			Movements: db.Movements(),
			TxRunner:  memory.NewTxRunner(db),
		}, nil

	case config.DriverPostgres:
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Provider{
			Driver:    config.DriverPostgres,
			Items:     postgres.NewItemRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			closeFn:   pool.Close,
		}, nil

	case config.DriverFirestore:
		client, err := firestore.NewClient(ctx, cfg.Firestore)
		if err != nil {
			return nil, err
		}
		cols := firestore.CollectionsFrom(cfg.Firestore)
		log.Info().Str("project", cfg.Firestore.ProjectID).Str("itens", cols.Items).Msg("firestore conectado")
		return &Provider{
			Driver:    config.DriverFirestore,
			Items:     firestore.NewItemRepository(client, cols.Items),
			Movements: firestore.NewMovementRepository(client, cols.Movements),
			TxRunner:  firestore.NewTxRunner(client, cols),
			closeFn:   func() { _ = client.Close() },
		}, nil
	}
	return nil, fmt.Errorf("PERSISTENCE_DRIVER desconocido: %q", cfg.Persistence.Driver)
}
