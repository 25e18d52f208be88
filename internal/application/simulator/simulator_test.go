package simulator_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/application/simulator"
	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

type call struct {
	tag, tipo string
	qtd       int
}

type fakeMutator struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (f *fakeMutator) ApplyDelta(_ context.Context, tag, tipo string, qtd int) (*dto.ItemResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{tag, tipo, qtd})
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ItemResponse{Tag: tag, Quantidade: 1}, nil
}

func (f *fakeMutator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type staticItems []*entity.Item

func (s staticItems) Snapshot() []*entity.Item { return s }

func seeded() simulator.Option {
	return simulator.WithRand(rand.New(rand.NewPCG(1, 2)))
}

func TestTick_EligeItemTipoYQtdValidos(t *testing.T) {
	m := &fakeMutator{}
	items := staticItems{{Tag: "001"}, {Tag: "002"}, {Tag: "003"}}
	s := simulator.New(m, items, time.Hour, nil, seeded())

	for i := 0; i < 200; i++ {
		require.NoError(t, s.Tick(context.Background()))
	}
	require.Len(t, m.calls, 200)

	var entradas int
	for _, c := range m.calls {
		assert.Contains(t, []string{"001", "002", "003"}, c.tag)
		assert.True(t, entity.ValidMovementType(c.tipo))
		assert.GreaterOrEqual(t, c.qtd, 1)
		assert.LessOrEqual(t, c.qtd, 3)
		if c.tipo == entity.MovementTypeIn {
			entradas++
		}
	}
	assert.Greater(t, entradas, 70, "entrada con probabilidad 0.55")
	assert.Less(t, entradas, 150)
	assert.Equal(t, uint64(200), s.Status().Ticks)
}

func TestTick_SinItemsNoLlamaAlMutator(t *testing.T) {
	m := &fakeMutator{}
	s := simulator.New(m, staticItems{}, time.Hour, nil, seeded())
	require.NoError(t, s.Tick(context.Background()))
	assert.Zero(t, m.count())
}

func TestTick_SaidaSinEstoqueNoEsError(t *testing.T) {
	m := &fakeMutator{err: domain.ErrInvalidOperation}
	s := simulator.New(m, staticItems{{Tag: "001"}}, time.Hour, nil, seeded())
	assert.NoError(t, s.Tick(context.Background()))

	m.err = errors.Join(domain.ErrPersistence, errors.New("offline"))
	assert.ErrorIs(t, s.Tick(context.Background()), domain.ErrPersistence)
}

func TestStartStop_Idempotentes(t *testing.T) {
	m := &fakeMutator{}
	s := simulator.New(m, staticItems{{Tag: "001"}}, 5*time.Millisecond, nil, seeded())

	s.Stop() // antes de Start: sin efecto
	assert.False(t, s.Running())

	ctx, cancel := context.WithCancel(context.Background())
	assert.True(t, s.Start(ctx))
	assert.False(t, s.Start(ctx), "segundo Start no crea otro ticker")
	cancel() // cancelar el ctx del caller no detiene el simulador
	assert.True(t, s.Running())

	assert.Eventually(t, func() bool { return m.count() >= 3 }, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()
	assert.False(t, s.Running())
	n := m.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, m.count(), "sin ticks después de Stop")

	assert.True(t, s.Start(context.Background()), "se puede reiniciar")
	s.Stop()
}
