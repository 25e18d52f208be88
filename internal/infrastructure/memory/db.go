// Package memory implementa los puertos de persistencia sobre estado en proceso.
// Es el driver por defecto (PERSISTENCE_DRIVER=memory) y el que usan los tests de integración.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

type state struct {
	items     []*entity.Item // orden de inserción = orden del proveedor
	movements []*entity.Movement
}

func (s state) clone() state {
	c := state{
		items:     make([]*entity.Item, len(s.items)),
		movements: make([]*entity.Movement, len(s.movements)),
	}
	for i, it := range s.items {
		c.items[i] = it.Clone()
	}
	for i, m := range s.movements {
		mv := *m
		c.movements[i] = &mv
	}
	return c
}

// DB es el estado compartido por los repositorios en memoria.
type DB struct {
	mu    sync.Mutex
	state state
	nowFn func() time.Time
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{nowFn: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (db *DB) WithClock(now func() time.Time) *DB {
	db.nowFn = now
	return db
}

// Items devuelve el repositorio de items fuera de transacción.
func (db *DB) Items() *ItemRepo {
	return &ItemRepo{db: db}
}

// Movements devuelve el ledger fuera de transacción.
func (db *DB) Movements() *MovementRepo {
	return &MovementRepo{db: db}
}

// view ejecuta fn con el lock tomado salvo que ya estemos dentro de una transacción (tx != nil).
func (db *DB) view(tx *state, fn func(s *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(&db.state)
}
