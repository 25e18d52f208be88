package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
	"github.com/jhoicas/sipac-estoque/pkg/config"
)

func TestOpen_Memoria(t *testing.T) {
	ctx := context.Background()
	p, err := Open(ctx, &config.Config{Persistence: config.PersistenceConfig{Driver: config.DriverMemory}}, nil)
	require.NoError(t, err)
	defer p.Close()

	err = p.TxRunner.Run(ctx, func(items repository.ItemRepository, movements repository.MovementRepository) error {
		if _, err := items.Create(ctx, &entity.Item{Tag: "001", Name: "Camiseta", Quantity: 1}); err != nil {
			return err
		}
		return movements.Append(ctx, &entity.Movement{ItemTag: "001", Type: entity.MovementTypeIn, Quantity: 1})
	})
	require.NoError(t, err)

	list, err := p.Items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	ms, err := p.Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, ms, 1, "los tres puertos comparten el mismo estado")
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Persistence: config.PersistenceConfig{Driver: "mongo"}}, nil)
	assert.ErrorContains(t, err, "mongo")
}
