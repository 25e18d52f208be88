package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/sipac-estoque/internal/domain"
	"github.com/jhoicas/sipac-estoque/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre una copia del estado y la publica solo si fn termina sin error.
type TxRunner struct {
	db *DB
}

// NewTxRunner crea el runner sobre db.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run serializa las transacciones: el lock se mantiene durante todo fn.
func (t *TxRunner) Run(ctx context.Context, fn func(items repository.ItemRepository, movements repository.MovementRepository) error) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	work := t.db.state.clone()
	if err := fn(&ItemRepo{db: t.db, tx: &work}, &MovementRepo{db: t.db, tx: &work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrPersistence, err)
	}
	t.db.state = work
	return nil
}
