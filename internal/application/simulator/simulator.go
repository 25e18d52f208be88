// Package simulator emula el feed IoT de la tienda: a intervalo fijo elige una pieza al azar
// y registra una entrada o una saída por el mismo camino que una acción manual.
package simulator

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/pkg/logger"
)

const (
	DefaultInterval = 1600 * time.Millisecond
	inboundProb     = 0.55
	maxQtd          = 3
)

// Mutator punto de entrada de las mutaciones (inventory.MutationUseCase).
type Mutator interface {
	ApplyDelta(ctx context.Context, tag, tipo string, qtd int) (*dto.ItemResponse, error)
}

// ItemSource snapshot de items del que se elige la pieza.
type ItemSource interface {
	Snapshot() []*entity.Item
}

// Simulator tarea periódica con ciclo de vida explícito.
type Simulator struct {
	mutator  Mutator
	items    ItemSource
	interval time.Duration
	log      *logger.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	ticks atomic.Uint64
}

// Option configura el simulador.
type Option func(*Simulator)

// WithRand inyecta la fuente aleatoria (tests deterministas).
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rng = r }
}

// New construye el simulador detenido.
func New(mutator Mutator, items ItemSource, interval time.Duration, log *logger.Logger, opts ...Option) *Simulator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Simulator{
		mutator:  mutator,
		items:    items,
		interval: interval,
		log:      log.Component("simulator"),
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start arranca el ticker. Devuelve false si ya estaba corriendo.
// El ciclo no depende de la cancelación de ctx (suele ser el de una request HTTP); solo Stop lo detiene.
func (s *Simulator) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return false
	}
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(loopCtx, s.done)
	s.log.Info().Dur("intervalo", s.interval).Msg("simulador iniciado")
	return true
}

// Stop detiene el ticker y espera a que termine el tick en curso. Llamarlo de más no tiene efecto.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Info().Uint64("ticks", s.ticks.Load()).Msg("simulador detenido")
}

// Running indica si el ticker está activo.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Status estado para GET /api/simulador.
func (s *Simulator) Status() dto.SimulatorStatusDTO {
	return dto.SimulatorStatusDTO{
		Ativo:       s.Running(),
		IntervaloMs: s.interval.Milliseconds(),
		Ticks:       s.ticks.Load(),
	}
}

func (s *Simulator) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.Tick(ctx); err != nil && ctx.Err() == nil {
				s.log.Warn().Err(err).Msg("tick del simulador falló")
			}
		}
	}
}

// Tick ejecuta un paso: pieza al azar, entrada con probabilidad 0.55, qtd entre 1 y 3.
// Una saída sobre estoque zerado no es un error del simulador.
func (s *Simulator) Tick(ctx context.Context) error {
	s.ticks.Add(1)
	items := s.items.Snapshot()
	if len(items) == 0 {
		return nil
	}

	s.rngMu.Lock()
	it := items[s.rng.IntN(len(items))]
	tipo := entity.MovementTypeOut
	if s.rng.Float64() < inboundProb {
		tipo = entity.MovementTypeIn
	}
	qtd := s.rng.IntN(maxQtd) + 1
	s.rngMu.Unlock()

	out, err := s.mutator.ApplyDelta(ctx, it.Tag, tipo, qtd)
	switch {
	case errors.Is(err, domain.ErrInvalidOperation):
		s.log.Debug().Str("tag", it.Tag).Msg("saida ignorada: sem estoque")
		return nil
	case err != nil:
		return err
	}
	s.log.Debug().Str("tag", it.Tag).Str("tipo", tipo).Int("qtd", qtd).Int("novaQtd", out.Quantidade).Msg("tick")
	return nil
}
